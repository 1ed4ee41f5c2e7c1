package httpx

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/custodia-labs/deckroute/internal/core/domain"
)

// GenerationResponse is the envelope returned by the generation endpoints.
// Services fill different parts of it: the content and hero endpoints
// return html, the pyramid endpoint adds generated_content and validation,
// and the chart endpoint returns a content object of named fragments.
type GenerationResponse struct {
	Success          *bool             `json:"success,omitempty"`
	Error            string            `json:"error,omitempty"`
	HTML             string            `json:"html,omitempty"`
	Content          json.RawMessage   `json:"content,omitempty"`
	GeneratedContent map[string]string `json:"generated_content,omitempty"`
	Validation       map[string]any    `json:"validation,omitempty"`
	Metadata         map[string]any    `json:"metadata,omitempty"`
}

// ToGenerated converts the envelope to domain content. A response that
// reports failure or carries no content is an ErrInvalidResponse.
func (r *GenerationResponse) ToGenerated() (*domain.GeneratedContent, error) {
	if r.Success != nil && !*r.Success {
		msg := r.Error
		if msg == "" {
			msg = "service reported failure"
		}
		return nil, fmt.Errorf("%w: %s", domain.ErrInvalidResponse, msg)
	}

	out := &domain.GeneratedContent{
		HTML:     r.HTML,
		Fields:   make(map[string]string),
		Metadata: r.Metadata,
	}

	raw := bytes.TrimSpace(r.Content)
	switch {
	case len(raw) == 0 || bytes.Equal(raw, []byte("null")):
	case raw[0] == '"':
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return nil, fmt.Errorf("%w: content: %w", domain.ErrInvalidResponse, err)
		}
		if out.HTML == "" {
			out.HTML = s
		}
	case raw[0] == '{':
		var fields map[string]json.RawMessage
		if err := json.Unmarshal(raw, &fields); err != nil {
			return nil, fmt.Errorf("%w: content: %w", domain.ErrInvalidResponse, err)
		}
		for k, v := range fields {
			var s string
			if json.Unmarshal(v, &s) == nil {
				out.Fields[k] = s
			} else {
				out.Fields[k] = string(v)
			}
		}
	default:
		return nil, fmt.Errorf("%w: unexpected content type", domain.ErrInvalidResponse)
	}

	for k, v := range r.GeneratedContent {
		out.Fields[k] = v
	}
	if len(r.Validation) > 0 {
		if out.Metadata == nil {
			out.Metadata = make(map[string]any)
		}
		out.Metadata["validation"] = r.Validation
	}

	if out.HTML == "" && len(out.Fields) == 0 {
		return nil, fmt.Errorf("%w: response has no content", domain.ErrInvalidResponse)
	}
	if len(out.Fields) == 0 {
		out.Fields = nil
	}
	return out, nil
}
