package job

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/wesen/encodeq/internal/codec"
)

// BuildCommand constructs the complete ffmpeg argument slice for the
// job, starting with the encoder binary name and ending with the
// overwrite flag and the resolved output path. The mapping is
// deterministic for a given job:
//
//   - hardware encoders (NVENC) take -cq, software encoders -crf
//   - libvpx-vp9 takes -speed instead of -preset
//   - audio codec "none" maps to -an, "copy" to -c:a copy
func (j *Job) BuildCommand() []string {
	args := []string{"ffmpeg", "-i", j.Input}

	vc := codec.VideoByID(j.Settings.VideoCodecID)
	if vc == nil {
		// Settings are validated at batch build; an unknown ID here
		// would fail at spawn with a clear encoder error anyway.
		vc = &codec.VideoCodecs[0]
	}

	args = append(args, "-c:v", vc.Encoder)

	if vc.Hardware {
		args = append(args, "-cq", strconv.Itoa(j.Settings.CRF))
	} else {
		args = append(args, "-crf", strconv.Itoa(j.Settings.CRF))
	}

	if j.Settings.Preset != "" {
		if vc.ID == "libvpx-vp9" {
			args = append(args, "-speed", j.Settings.Preset)
		} else {
			args = append(args, "-preset", j.Settings.Preset)
		}
	}

	if j.Settings.ScaleHeight > 0 {
		// Height-only scale, width kept divisible by 2.
		args = append(args, "-vf", fmt.Sprintf("scale=-2:%d", j.Settings.ScaleHeight))
	}

	ac := codec.AudioByID(j.Settings.AudioCodecID)
	switch {
	case ac == nil || ac.Encoder == "":
		args = append(args, "-an")
	case ac.Encoder == "copy":
		args = append(args, "-c:a", "copy")
	default:
		args = append(args, "-c:a", ac.Encoder)
		if j.Settings.AudioBitrate != "" {
			args = append(args, "-b:a", j.Settings.AudioBitrate)
		}
	}

	args = append(args, "-y", j.OutputPath())
	return args
}

// CommandString renders the command for preview display.
func (j *Job) CommandString() string {
	return strings.Join(j.BuildCommand(), " ")
}
