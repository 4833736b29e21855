package recipes

import (
	"encoding/base64"
	"fmt"
	"strings"
)

// ImageFile is an image attached to a create or update, carried as a data
// URL alongside the file's original name.
type ImageFile struct {
	Name    string
	DataURL string
}

// Input holds the writable recipe fields for Create and Update.
type Input struct {
	Title        string
	VideoLink    string
	Ingredients  []string
	Instructions []string
	Images       []ImageFile

	// RemoveImages asks Update to delete every existing image blob and keep
	// only the newly attached ones. Ignored by Create.
	RemoveImages bool
}

// validate trims the input's fields and drops the blank entries that dynamic
// form fields leave behind. Filtering belongs here, not in the view layer.
func (in *Input) validate() error {
	in.Title = strings.TrimSpace(in.Title)
	if in.Title == "" {
		return &ValidationError{Reason: "title is required"}
	}
	in.VideoLink = strings.TrimSpace(in.VideoLink)
	in.Ingredients = dropBlank(in.Ingredients)
	if len(in.Ingredients) == 0 {
		return &ValidationError{Reason: "at least one ingredient is required"}
	}
	in.Instructions = dropBlank(in.Instructions)
	if len(in.Instructions) == 0 {
		return &ValidationError{Reason: "at least one instruction is required"}
	}
	for _, img := range in.Images {
		if strings.TrimSpace(img.Name) == "" {
			return &ValidationError{Reason: "image file name is required"}
		}
	}
	return nil
}

func dropBlank(entries []string) []string {
	kept := make([]string, 0, len(entries))
	for _, e := range entries {
		if e = strings.TrimSpace(e); e != "" {
			kept = append(kept, e)
		}
	}
	return kept
}

// parseDataURL splits a base64 image data URL into its content type and
// decoded bytes.
func parseDataURL(dataURL string) (string, []byte, error) {
	rest, ok := strings.CutPrefix(dataURL, "data:")
	if !ok {
		return "", nil, &ValidationError{Reason: fmt.Sprintf("invalid data URL %q", dataURL)}
	}
	ct, contents, ok := strings.Cut(rest, ";")
	if !ok {
		return "", nil, &ValidationError{Reason: fmt.Sprintf("invalid data URL %q", dataURL)}
	}
	if !strings.HasPrefix(ct, "image/") {
		return "", nil, &ValidationError{Reason: fmt.Sprintf("only image data URLs are supported, got %q", ct)}
	}
	b64, ok := strings.CutPrefix(contents, "base64,")
	if !ok {
		return "", nil, &ValidationError{Reason: "only base64 data URLs are supported"}
	}
	data, err := base64.StdEncoding.DecodeString(b64)
	if err != nil {
		return "", nil, &ValidationError{Reason: "decoding base64 data URL: " + err.Error()}
	}
	return ct, data, nil
}
