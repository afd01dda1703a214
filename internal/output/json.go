package output

import (
	"encoding/json"
	"io"
	"strconv"
	"time"

	"github.com/jroosing/hound/internal/dnswire"
)

// JSON document shape: a "responses" array plus an optional run duration.
// Errors use a separate {"error":true} document so scripts can branch on a
// single field.

type jsonDocument struct {
	Responses []jsonResponse `json:"responses"`
	Duration  *jsonDuration  `json:"duration,omitempty"`
}

type jsonResponse struct {
	Queries     []jsonQuery  `json:"queries"`
	Answers     []jsonRecord `json:"answers"`
	Authorities []jsonRecord `json:"authorities"`
	Additionals []jsonRecord `json:"additionals"`
}

type jsonQuery struct {
	Name  string `json:"name"`
	Class string `json:"class"`
	Type  string `json:"type"`
}

type jsonRecord struct {
	Name  string `json:"name"`
	Class string `json:"class"`
	TTL   uint32 `json:"ttl"`
	Type  string `json:"type"`
	Data  string `json:"data"`
}

type jsonDuration struct {
	Secs   int64 `json:"secs"`
	Millis int64 `json:"millis"`
}

type jsonError struct {
	Error        bool   `json:"error"`
	ErrorMessage string `json:"error_message"`
}

func (r *Renderer) renderJSON(results []Result, elapsed time.Duration) (int, error) {
	doc := jsonDocument{Responses: make([]jsonResponse, 0, len(results))}
	lines := 0

	for _, res := range results {
		msg := res.Response.Message
		jr := jsonResponse{
			Queries: []jsonQuery{{
				Name:  presentName(msg.Question.Name),
				Class: presentClass(msg.Question.Class),
				Type:  msg.Question.Type.String(),
			}},
			Answers:     jsonRecords(msg.Answers),
			Authorities: jsonRecords(msg.Authorities),
			Additionals: jsonRecords(msg.Additionals),
		}
		lines += len(jr.Answers)
		doc.Responses = append(doc.Responses, jr)
	}

	if r.ShowDuration {
		doc.Duration = &jsonDuration{
			Secs:   int64(elapsed / time.Second),
			Millis: int64(elapsed % time.Second / time.Millisecond),
		}
	}

	enc := json.NewEncoder(r.W)
	if err := enc.Encode(doc); err != nil {
		return lines, err
	}
	return lines, nil
}

func jsonRecords(records []dnswire.ResourceRecord) []jsonRecord {
	out := make([]jsonRecord, 0, len(records))
	for _, rr := range records {
		out = append(out, jsonRecord{
			Name:  presentName(rr.Name),
			Class: presentClass(rr.Class),
			TTL:   rr.TTL,
			Type:  rr.Data.Type().String(),
			Data:  rr.Data.Value(),
		})
	}
	return out
}

func presentClass(class uint16) string {
	switch class {
	case dnswire.ClassIN:
		return "IN"
	case 3:
		return "CH"
	case 4:
		return "HS"
	default:
		return "class " + strconv.Itoa(int(class))
	}
}

// RenderError writes the JSON error document for a failed run.
func RenderError(w io.Writer, err error) {
	enc := json.NewEncoder(w)
	_ = enc.Encode(jsonError{Error: true, ErrorMessage: err.Error()})
}
