package platform

type YouTubeShorts struct{}

func init() {
	Register(&YouTubeShorts{})
}

func (p *YouTubeShorts) Name() string {
	return "youtube-shorts"
}

func (p *YouTubeShorts) Dimensions() (width, height int) {
	return 1080, 1920
}

func (p *YouTubeShorts) MaxDuration() int {
	return 60
}

func (p *YouTubeShorts) VideoCodec() string {
	return "libx264"
}

func (p *YouTubeShorts) AudioCodec() string {
	return "aac"
}

func (p *YouTubeShorts) VideoBitrate() string {
	return "4M"
}

func (p *YouTubeShorts) AudioBitrate() string {
	return "128k"
}
