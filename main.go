package main

import (
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/kirinuki-dev/kirinuki/internal/chat"
	"github.com/kirinuki-dev/kirinuki/internal/config"
	"github.com/kirinuki-dev/kirinuki/internal/fetch"
	"github.com/kirinuki-dev/kirinuki/internal/ffmpeg"
	"github.com/kirinuki-dev/kirinuki/internal/overlay"
	"github.com/kirinuki-dev/kirinuki/internal/pipeline"
	"github.com/kirinuki-dev/kirinuki/internal/platform"
	"github.com/kirinuki-dev/kirinuki/internal/subtitle"
	"github.com/kirinuki-dev/kirinuki/internal/timecode"
	"github.com/kirinuki-dev/kirinuki/internal/transcribe"
)

var (
	rootCmd = &cobra.Command{
		Use:   "kirinuki",
		Short: "A clip extraction tool with subtitle and live chat overlays",
		Long: `kirinuki cuts a window out of a YouTube video and decorates it with
rebased subtitles, a live chat overlay and a title bar.

Examples:
  # Run the whole pipeline from a config file
  kirinuki run config.txt

  # Re-run only the composition step
  kirinuki run config.txt --skip 0 1 2 3 4 5`,
	}

	runCmd = &cobra.Command{
		Use:   "run <config>",
		Short: "Run the full clip pipeline",
		Long: `Run every pipeline step: download the clip window, fetch and rebase
subtitles and live chat, generate the overlay tracks and compose the
final video.

Steps (for --skip):
  0  download and cut the source video
  1  fetch subtitles
  2  rebase subtitles onto clip time
  3  fetch the live chat replay
  4  extract chat messages for the clip window
  5  generate overlay tracks
  6  compose the final video`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			skip, _ := cmd.Flags().GetIntSlice("skip")
			doTranscribe, _ := cmd.Flags().GetBool("transcribe")
			verbose, _ := cmd.Flags().GetBool("verbose")

			cfg, err := config.Load(args[0])
			if err != nil {
				return err
			}

			finalPath, err := pipeline.Run(cmd.Context(), pipeline.Options{
				Config:     cfg,
				Skip:       skip,
				Transcribe: doTranscribe,
				Verbose:    verbose,
			})
			if err != nil {
				return err
			}
			fmt.Printf("Final output: %s\n", finalPath)
			return nil
		},
	}

	initCmd = &cobra.Command{
		Use:   "init",
		Short: "Create a sample configuration file",
		RunE: func(cmd *cobra.Command, args []string) error {
			output, _ := cmd.Flags().GetString("output")
			return config.WriteSample(output)
		},
	}

	downloadCmd = &cobra.Command{
		Use:   "download <url>",
		Short: "Download and cut a clip from a video",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			start, _ := cmd.Flags().GetString("start")
			end, _ := cmd.Flags().GetString("end")
			output, _ := cmd.Flags().GetString("output")
			full, _ := cmd.Flags().GetBool("full")
			verbose, _ := cmd.Flags().GetBool("verbose")

			fetcher := fetch.NewFetcher(verbose)
			return fetcher.DownloadClip(cmd.Context(), fetch.DownloadOptions{
				URL:          args[0],
				StartTime:    start,
				EndTime:      end,
				OutputPath:   output,
				FullDownload: full,
			})
		},
	}

	subtitlesCmd = &cobra.Command{
		Use:   "subtitles <url>",
		Short: "Fetch subtitles for a video as SRT",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			output, _ := cmd.Flags().GetString("output")
			lang, _ := cmd.Flags().GetString("lang")
			verbose, _ := cmd.Flags().GetBool("verbose")

			fetcher := fetch.NewFetcher(verbose)
			ok, err := fetcher.FetchSubtitles(cmd.Context(), args[0], output, lang)
			if err != nil {
				return err
			}
			if !ok {
				fmt.Println("No subtitles available for this video")
				return nil
			}
			fmt.Printf("Subtitles written to %s\n", output)
			return nil
		},
	}

	transcribeCmd = &cobra.Command{
		Use:   "transcribe <video>",
		Short: "Generate subtitles by speech recognition",
		Long: `Generate subtitles for a clip with whisper. Writes both a plain SRT
file and a styled ASS track with the same base name.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			output, _ := cmd.Flags().GetString("output")
			model, _ := cmd.Flags().GetString("model")
			lang, _ := cmd.Flags().GetString("lang")
			verbose, _ := cmd.Flags().GetBool("verbose")

			cues, err := transcribe.Run(cmd.Context(), transcribe.Options{
				VideoPath: args[0],
				OutputSRT: output,
				Model:     model,
				Language:  lang,
				Verbose:   verbose,
			})
			if err != nil {
				return err
			}
			fmt.Printf("Generated %d segments: %s, %s\n", len(cues), output, transcribe.ASSPath(output))
			return nil
		},
	}

	rebaseCmd = &cobra.Command{
		Use:   "rebase <input.srt>",
		Short: "Rebase full-video subtitles onto clip time",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			output, _ := cmd.Flags().GetString("output")
			start, _ := cmd.Flags().GetString("start")
			end, _ := cmd.Flags().GetString("end")

			startOffset, window, err := resolveWindow(start, end)
			if err != nil {
				return err
			}

			cues, err := subtitle.ParseSRTFile(args[0])
			if err != nil {
				return err
			}
			rebased := subtitle.Rebase(cues, startOffset, window)
			if len(rebased) == 0 {
				fmt.Println("No cues fall inside the clip window")
				return nil
			}
			if err := subtitle.WriteSRTFile(output, rebased); err != nil {
				return err
			}
			fmt.Printf("Wrote %d cues to %s\n", len(rebased), output)
			return nil
		},
	}

	chatCmd = &cobra.Command{
		Use:   "chat <url>",
		Short: "Fetch a video's live chat replay as JSONL",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			output, _ := cmd.Flags().GetString("output")
			verbose, _ := cmd.Flags().GetBool("verbose")

			fetcher := fetch.NewFetcher(verbose)
			count, err := fetcher.FetchChat(cmd.Context(), args[0], output)
			if err != nil {
				return err
			}
			if count == 0 {
				fmt.Println("No chat replay available for this video")
				return nil
			}
			fmt.Printf("Wrote %d messages to %s\n", count, output)
			return nil
		},
	}

	extractChatCmd = &cobra.Command{
		Use:   "extract-chat <input.json>",
		Short: "Extract chat messages for a clip window",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			output, _ := cmd.Flags().GetString("output")
			start, _ := cmd.Flags().GetString("start")
			end, _ := cmd.Flags().GetString("end")
			dedup, _ := cmd.Flags().GetFloat64("dedup-window")
			minLen, _ := cmd.Flags().GetInt("min-length")
			maxLen, _ := cmd.Flags().GetInt("max-length")
			excluded, _ := cmd.Flags().GetStringSlice("exclude-author")

			startOffset, window, err := resolveWindow(start, end)
			if err != nil {
				return err
			}

			msgs, err := chat.ReadJSONLFile(args[0])
			if err != nil {
				return err
			}
			clipMsgs := chat.Rebase(msgs, chat.RebaseOptions{
				StartOffset: startOffset,
				Window:      window,
				DedupWindow: dedup,
			})
			if minLen > 0 || maxLen > 0 || len(excluded) > 0 {
				clipMsgs = chat.Filter(clipMsgs, minLen, maxLen, excluded)
			}
			if len(clipMsgs) == 0 {
				fmt.Println("No messages fall inside the clip window")
				return nil
			}
			if err := chat.WriteJSONFile(output, clipMsgs); err != nil {
				return err
			}
			fmt.Printf("Wrote %d messages to %s\n", len(clipMsgs), output)
			return nil
		},
	}

	overlayCmd = &cobra.Command{
		Use:   "overlay <chat.json>",
		Short: "Generate a chat overlay ASS track",
		Long: `Generate an ASS overlay from clip-time chat messages.

Modes:
- scroll: messages run right-to-left across horizontal lanes
- stack:  a capacity-bounded history column in the lower left`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			output, _ := cmd.Flags().GetString("output")
			mode, _ := cmd.Flags().GetString("mode")

			msgs, err := chat.ReadJSONFile(args[0])
			if err != nil {
				return err
			}

			cfg := overlay.DefaultConfig()
			cfg.Mode = overlay.Mode(mode)
			doc, count, err := overlay.GenerateChatOverlay(msgs, cfg)
			if err != nil {
				return err
			}
			if err := os.WriteFile(output, []byte(doc), 0o644); err != nil {
				return err
			}
			fmt.Printf("Wrote %d events to %s\n", count, output)
			return nil
		},
	}

	titleBarCmd = &cobra.Command{
		Use:   "title-bar",
		Short: "Generate a title bar ASS track",
		RunE: func(cmd *cobra.Command, args []string) error {
			title, _ := cmd.Flags().GetString("title")
			channel, _ := cmd.Flags().GetString("channel")
			output, _ := cmd.Flags().GetString("output")

			doc, err := overlay.GenerateTitleBar(title, channel, overlay.DefaultTitleBarConfig())
			if err != nil {
				return err
			}
			if err := os.WriteFile(output, []byte(doc), 0o644); err != nil {
				return err
			}
			fmt.Printf("Title bar written to %s\n", output)
			return nil
		},
	}

	composeCmd = &cobra.Command{
		Use:   "compose <video>",
		Short: "Burn subtitle and overlay tracks into a video",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			output, _ := cmd.Flags().GetString("output")
			subtitlePath, _ := cmd.Flags().GetString("subtitle")
			overlayPath, _ := cmd.Flags().GetString("overlay")
			titlePath, _ := cmd.Flags().GetString("title")
			logoPath, _ := cmd.Flags().GetString("logo")
			cropTop, _ := cmd.Flags().GetFloat64("crop-top")
			cropBottom, _ := cmd.Flags().GetFloat64("crop-bottom")
			cropLeft, _ := cmd.Flags().GetFloat64("crop-left")
			cropRight, _ := cmd.Flags().GetFloat64("crop-right")
			format, _ := cmd.Flags().GetString("format")
			preset, _ := cmd.Flags().GetString("preset")
			verbose, _ := cmd.Flags().GetBool("verbose")

			opts := ffmpeg.DefaultComposeOptions()
			opts.SubtitlePath = subtitlePath
			opts.OverlayPath = overlayPath
			opts.TitlePath = titlePath
			opts.LogoPath = logoPath
			opts.Crop = ffmpeg.Crop{
				TopPercent:    cropTop,
				BottomPercent: cropBottom,
				LeftPercent:   cropLeft,
				RightPercent:  cropRight,
			}
			opts.OutputFormat = format
			opts.Preset = preset

			proc := ffmpeg.NewProcessor(verbose)
			return proc.Compose(args[0], output, opts)
		},
	}

	shortsCmd = &cobra.Command{
		Use:   "shorts <video>",
		Short: "Cut a vertical short from a clip",
		Long: fmt.Sprintf(`Cut a segment out of a finished clip and reframe it on a vertical
canvas for short-form platforms.

Supported platforms:
%s`, formatSupportedTargets()),
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			output, _ := cmd.Flags().GetString("output")
			start, _ := cmd.Flags().GetFloat64("start")
			end, _ := cmd.Flags().GetFloat64("end")
			targetName, _ := cmd.Flags().GetString("target-platform")
			verbose, _ := cmd.Flags().GetBool("verbose")

			opts := ffmpeg.ShortOptions{
				StartTime: start,
				EndTime:   end,
			}
			if targetName != "" {
				target, err := platform.Get(targetName)
				if err != nil {
					return err
				}
				opts.Target = target
			}

			proc := ffmpeg.NewProcessor(verbose)
			return proc.GenerateShort(args[0], output, opts)
		},
	}
)

func formatSupportedTargets() string {
	var sb strings.Builder
	for _, name := range platform.Supported() {
		sb.WriteString(fmt.Sprintf("- %s\n", name))
	}
	return sb.String()
}

// resolveWindow turns start/end clock strings into a start offset and
// window length in seconds. An empty end means open-ended.
func resolveWindow(start, end string) (float64, float64, error) {
	startOffset, err := timecode.ParseClock(start)
	if err != nil {
		return 0, 0, err
	}
	if end == "" {
		return startOffset, 0, nil
	}
	endSeconds, err := timecode.ParseClock(end)
	if err != nil {
		return 0, 0, err
	}
	if endSeconds <= startOffset {
		return 0, 0, fmt.Errorf("end time %s is not after start time %s", end, start)
	}
	return startOffset, endSeconds - startOffset, nil
}

func init() {
	runCmd.Flags().IntSlice("skip", nil, "Step numbers to skip (e.g., --skip 1,3)")
	runCmd.Flags().Bool("transcribe", false, "Fall back to speech recognition when no subtitles exist")
	runCmd.Flags().BoolP("verbose", "v", false, "Enable verbose logging")

	initCmd.Flags().StringP("output", "o", "config.txt", "Sample config path")

	downloadCmd.Flags().StringP("start", "s", "", "Clip start time (hh:mm:ss or mm:ss)")
	downloadCmd.Flags().StringP("end", "e", "", "Clip end time")
	downloadCmd.Flags().StringP("output", "o", "", "Output video path")
	downloadCmd.Flags().Bool("full", false, "Download the full video and cut locally")
	downloadCmd.Flags().BoolP("verbose", "v", false, "Enable verbose logging")
	downloadCmd.MarkFlagRequired("start")
	downloadCmd.MarkFlagRequired("output")

	subtitlesCmd.Flags().StringP("output", "o", "", "Output SRT path")
	subtitlesCmd.Flags().String("lang", "ja", "Subtitle language code")
	subtitlesCmd.Flags().BoolP("verbose", "v", false, "Enable verbose logging")
	subtitlesCmd.MarkFlagRequired("output")

	transcribeCmd.Flags().StringP("output", "o", "", "Output SRT path")
	transcribeCmd.Flags().String("model", "large", "Whisper model size")
	transcribeCmd.Flags().String("lang", "ja", "Speech language code")
	transcribeCmd.Flags().BoolP("verbose", "v", false, "Enable verbose logging")
	transcribeCmd.MarkFlagRequired("output")

	rebaseCmd.Flags().StringP("output", "o", "", "Output SRT path")
	rebaseCmd.Flags().StringP("start", "s", "", "Clip start time in the source video")
	rebaseCmd.Flags().StringP("end", "e", "", "Clip end time in the source video")
	rebaseCmd.MarkFlagRequired("output")
	rebaseCmd.MarkFlagRequired("start")

	chatCmd.Flags().StringP("output", "o", "", "Output JSONL path")
	chatCmd.Flags().BoolP("verbose", "v", false, "Enable verbose logging")
	chatCmd.MarkFlagRequired("output")

	extractChatCmd.Flags().StringP("output", "o", "", "Output JSON path")
	extractChatCmd.Flags().StringP("start", "s", "", "Clip start time in the source video")
	extractChatCmd.Flags().StringP("end", "e", "", "Clip end time in the source video")
	extractChatCmd.Flags().Float64("dedup-window", 0, "Suppress repeated messages closer than this many seconds")
	extractChatCmd.Flags().Int("min-length", 0, "Drop messages shorter than this many characters")
	extractChatCmd.Flags().Int("max-length", 0, "Drop messages longer than this many characters")
	extractChatCmd.Flags().StringSlice("exclude-author", nil, "Drop messages from these authors")
	extractChatCmd.MarkFlagRequired("output")
	extractChatCmd.MarkFlagRequired("start")

	overlayCmd.Flags().StringP("output", "o", "", "Output ASS path")
	overlayCmd.Flags().String("mode", "scroll", "Overlay layout (scroll or stack)")
	overlayCmd.MarkFlagRequired("output")

	titleBarCmd.Flags().String("title", "", "Title text")
	titleBarCmd.Flags().String("channel", "", "Channel name for the ribbon")
	titleBarCmd.Flags().StringP("output", "o", "", "Output ASS path")
	titleBarCmd.MarkFlagRequired("title")
	titleBarCmd.MarkFlagRequired("output")

	composeCmd.Flags().StringP("output", "o", "", "Output video path")
	composeCmd.Flags().String("subtitle", "", "Subtitle track (SRT or ASS)")
	composeCmd.Flags().String("overlay", "", "Chat overlay ASS track")
	composeCmd.Flags().String("title", "", "Title bar ASS track")
	composeCmd.Flags().String("logo", "", "Channel logo image")
	composeCmd.Flags().Float64("crop-top", 0, "Percent to crop from the top")
	composeCmd.Flags().Float64("crop-bottom", 0, "Percent to crop from the bottom")
	composeCmd.Flags().Float64("crop-left", 0, "Percent to crop from the left")
	composeCmd.Flags().Float64("crop-right", 0, "Percent to crop from the right")
	composeCmd.Flags().String("format", "", "Output format (mp4 or webm)")
	composeCmd.Flags().String("preset", "", "Encoder preset name")
	composeCmd.Flags().BoolP("verbose", "v", false, "Enable verbose logging")
	composeCmd.MarkFlagRequired("output")

	shortsCmd.Flags().StringP("output", "o", "", "Output video path")
	shortsCmd.Flags().Float64P("start", "s", 0, "Start time in seconds")
	shortsCmd.Flags().Float64P("end", "e", 0, "End time in seconds")
	shortsCmd.Flags().StringP("target-platform", "t", "",
		fmt.Sprintf("Target platform for encoding (%s)", strings.Join(platform.Supported(), ", ")))
	shortsCmd.MarkFlagRequired("output")
	shortsCmd.MarkFlagRequired("end")

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(downloadCmd)
	rootCmd.AddCommand(subtitlesCmd)
	rootCmd.AddCommand(transcribeCmd)
	rootCmd.AddCommand(rebaseCmd)
	rootCmd.AddCommand(chatCmd)
	rootCmd.AddCommand(extractChatCmd)
	rootCmd.AddCommand(overlayCmd)
	rootCmd.AddCommand(titleBarCmd)
	rootCmd.AddCommand(composeCmd)
	rootCmd.AddCommand(shortsCmd)
}

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
