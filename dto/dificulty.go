package dto

import "github.com/skillmastery/server/model"

// CreateDificultyDTO is the POST body for a dificulty.
type CreateDificultyDTO struct {
	Value int `json:"value" binding:"required,gt=0"`
}

// DificultyDTO is the wire form of a dificulty; PUT bodies use it too.
type DificultyDTO struct {
	ID    int64 `json:"id"`
	Value int   `json:"value" binding:"required,gt=0"`
}

// DificultyToDTO maps a stored dificulty to its wire form.
func DificultyToDTO(m model.Dificulty) DificultyDTO {
	return DificultyDTO{ID: m.ID, Value: m.Value}
}

// DificultiesToDTO maps a slice of rows. The result is never nil.
func DificultiesToDTO(ms []model.Dificulty) []DificultyDTO {
	out := make([]DificultyDTO, 0, len(ms))
	for _, m := range ms {
		out = append(out, DificultyToDTO(m))
	}
	return out
}

// DificultyFromCreate builds a new row from a POST body.
func DificultyFromCreate(d CreateDificultyDTO) *model.Dificulty {
	return &model.Dificulty{Value: d.Value}
}

// DificultyFromDTO builds a row from a PUT body; ID selects the row to edit.
func DificultyFromDTO(d DificultyDTO) *model.Dificulty {
	return &model.Dificulty{ID: d.ID, Value: d.Value}
}

func dificultyRef(m *model.Dificulty) *DificultyDTO {
	if m == nil {
		return nil
	}
	d := DificultyToDTO(*m)
	return &d
}
