package platform

type TikTok struct{}

func init() {
	Register(&TikTok{})
}

func (p *TikTok) Name() string {
	return "tiktok"
}

func (p *TikTok) Dimensions() (width, height int) {
	return 1080, 1920
}

func (p *TikTok) MaxDuration() int {
	return 180
}

func (p *TikTok) VideoCodec() string {
	return "libx264"
}

func (p *TikTok) AudioCodec() string {
	return "aac"
}

func (p *TikTok) VideoBitrate() string {
	return "2M"
}

func (p *TikTok) AudioBitrate() string {
	return "128k"
}
