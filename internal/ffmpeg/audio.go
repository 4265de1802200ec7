package ffmpeg

import (
	"log"

	"github.com/pkg/errors"
	ffmpeg "github.com/u2takey/ffmpeg-go"
)

// ExtractAudio pulls the audio track out as 16 kHz mono PCM, the input
// format speech recognition models expect.
func (p *Processor) ExtractAudio(videoPath, outputPath string) error {
	if p.verbose {
		log.Printf("Extracting audio %s -> %s", videoPath, outputPath)
	}

	err := ffmpeg.Input(videoPath).
		Output(outputPath, ffmpeg.KwArgs{
			"map": "0:a", // audio only
			"c:a": "pcm_s16le",
			"ar":  16000, // the sample rate speech models are trained on
			"ac":  1,
		}).
		OverWriteOutput().
		ErrorToStdOut().
		Run()
	if err != nil {
		return errors.Wrap(err, "extracting audio")
	}
	return nil
}
