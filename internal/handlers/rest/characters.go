package rest

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"

	"github.com/KirkDiggler/dnd-character-sheet/internal/domain/character"
	dnderr "github.com/KirkDiggler/dnd-character-sheet/internal/errors"
	"github.com/gorilla/mux"
)

// Response is the envelope every character response is wrapped in
type Response struct {
	StatusCode int `json:"statusCode"`
	Body       any `json:"body"`
}

// MessageSaved is the body of a successful POST
const MessageSaved = "Successfully saved"

func (h *Handler) listCharacters(w http.ResponseWriter, r *http.Request) {
	owner := mux.Vars(r)["owner"]
	log := loggerFrom(r.Context(), h.log).WithField("owner", owner)

	chars, err := h.repo.List(r.Context(), owner)
	if err != nil {
		log.WithError(err).Error("Failed to list characters")
		writeError(w, err)
		return
	}

	log.WithField("count", len(chars)).Debug("Listed characters")
	writeJSON(w, http.StatusOK, Response{StatusCode: http.StatusOK, Body: chars})
}

func (h *Handler) replaceCharacters(w http.ResponseWriter, r *http.Request) {
	owner := mux.Vars(r)["owner"]
	log := loggerFrom(r.Context(), h.log).WithField("owner", owner)

	chars, err := decodeCollection(io.LimitReader(r.Body, h.maxBodyBytes))
	if err != nil {
		log.WithError(err).Warn("Rejected character collection")
		writeError(w, err)
		return
	}

	if err := h.repo.Replace(r.Context(), owner, chars); err != nil {
		log.WithError(err).Error("Failed to save characters")
		writeError(w, err)
		return
	}

	log.WithField("count", len(chars)).Info("Saved characters")
	writeJSON(w, http.StatusOK, Response{StatusCode: http.StatusOK, Body: MessageSaved})
}

// decodeCollection reads a JSON array of characters. Anything else,
// including null, is rejected.
func decodeCollection(body io.Reader) ([]*character.Character, error) {
	data, err := io.ReadAll(body)
	if err != nil {
		return nil, dnderr.WrapWithCode(err, dnderr.CodeInvalidArgument, "failed to read request body")
	}

	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || trimmed[0] != '[' {
		return nil, dnderr.InvalidArgument("request body must be a JSON array of characters")
	}

	var chars []*character.Character
	if err := json.Unmarshal(trimmed, &chars); err != nil {
		return nil, dnderr.WrapWithCode(err, dnderr.CodeInvalidArgument, "malformed character collection")
	}

	for i, char := range chars {
		if char == nil {
			return nil, dnderr.InvalidArgumentf("character %d is null", i).WithMeta("index", i)
		}
	}

	return chars, nil
}
