package elastic

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/kailas-cloud/hydrex/internal/db"
	"github.com/kailas-cloud/hydrex/internal/domain"
)

// getResponse is the body of GET /{index}/_doc/{id}.
type getResponse struct {
	Index  string         `json:"_index"`
	ID     string         `json:"_id"`
	Found  bool           `json:"found"`
	Source map[string]any `json:"_source"`
	Error  *errorCause    `json:"error,omitempty"`
}

type errorCause struct {
	Type   string `json:"type"`
	Reason string `json:"reason"`
}

// FetchDocument loads document id of index via the GET API.
func (s *Store) FetchDocument(ctx context.Context, index, id string) (*domain.RawDocument, error) {
	if index == "" || id == "" {
		return nil, fmt.Errorf("index and id are required")
	}

	res, err := s.es.Get(s.physicalName(index), id, s.es.Get.WithContext(ctx))
	if err != nil {
		return nil, &db.Error{Op: db.OpGet, Err: err}
	}
	defer res.Body.Close()

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, &db.Error{Op: db.OpGet, Err: fmt.Errorf("read body: %w", err)}
	}

	var gr getResponse
	decodeErr := json.Unmarshal(body, &gr)

	switch {
	case res.StatusCode == http.StatusNotFound && gr.Error != nil:
		return nil, &db.Error{Op: db.OpGet, Err: fmt.Errorf("%w: %s", db.ErrIndexNotFound, index)}
	case res.StatusCode == http.StatusNotFound:
		return nil, db.NotFound(index, id)
	case res.IsError():
		return nil, &db.Error{Op: db.OpGet, Err: statusError(res.StatusCode, gr.Error)}
	case decodeErr != nil:
		return nil, &db.Error{Op: db.OpGet, Err: fmt.Errorf("%w: %w", db.ErrBadResponse, decodeErr)}
	case !gr.Found:
		return nil, db.NotFound(index, id)
	}

	return &domain.RawDocument{
		ID:    gr.ID,
		Index: LogicalName(s.prefix, gr.Index),
		Data:  gr.Source,
	}, nil
}

func statusError(status int, cause *errorCause) error {
	if cause == nil {
		return fmt.Errorf("status %d", status)
	}
	return fmt.Errorf("status %d: %s: %s", status, cause.Type, cause.Reason)
}
