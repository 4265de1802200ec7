package platform

type InstagramReel struct{}

func init() {
	Register(&InstagramReel{})
}

func (p *InstagramReel) Name() string {
	return "instagram-reel"
}

func (p *InstagramReel) Dimensions() (width, height int) {
	return 1080, 1920
}

func (p *InstagramReel) MaxDuration() int {
	return 90
}

func (p *InstagramReel) VideoCodec() string {
	return "libx264"
}

func (p *InstagramReel) AudioCodec() string {
	return "aac"
}

func (p *InstagramReel) VideoBitrate() string {
	return "2M"
}

func (p *InstagramReel) AudioBitrate() string {
	return "128k"
}
