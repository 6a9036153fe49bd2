package extractor

import (
	"fmt"
	"strings"
	"time"
)

// Mode selects how the prompt frames the input.
type Mode int

const (
	ModeText Mode = iota
	// ModeAudio asks the model to transcribe before extracting.
	ModeAudio
)

// BuildPrompt composes the extraction instruction. ref anchors relative
// dates, tags is the vocabulary the model may choose from. text is ignored
// in ModeAudio.
func BuildPrompt(mode Mode, text string, ref time.Time, tags []string) string {
	rules := fmt.Sprintf(promptRules, ref.Format(referenceDateLayout), strings.Join(tags, ", "))

	if mode == ModeAudio {
		return promptAudioPrefix + rules
	}
	return fmt.Sprintf(promptTextPrefix, text) + rules
}
