package problem

import (
	"encoding/json"
	"net/http"
)

// render is a gin render.Render that keeps the problem media type.
type render struct {
	p Details
}

func (r render) Render(w http.ResponseWriter) error {
	r.WriteContentType(w)
	return json.NewEncoder(w).Encode(r.p)
}

func (r render) WriteContentType(w http.ResponseWriter) {
	w.Header().Set("Content-Type", ContentType)
}
