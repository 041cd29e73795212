package dto

import "github.com/skillmastery/server/model"

// CreateUserDTO is the POST body for a user.
type CreateUserDTO struct {
	FirstName string `json:"firstName" binding:"required,min=1,max=50"`
	LastName  string `json:"lastName" binding:"required,min=1,max=50"`
	Email     string `json:"email" binding:"required,max=254,email"`
}

// UserDTO is the wire form of a user; PUT bodies use it too.
type UserDTO struct {
	ID        int64  `json:"id"`
	FirstName string `json:"firstName" binding:"required,min=1,max=50"`
	LastName  string `json:"lastName" binding:"required,min=1,max=50"`
	Email     string `json:"email" binding:"required,max=254,email"`
}

// UserToDTO maps a stored user to its wire form.
func UserToDTO(m model.User) UserDTO {
	return UserDTO{
		ID:        m.ID,
		FirstName: m.FirstName,
		LastName:  m.LastName,
		Email:     m.Email,
	}
}

// UsersToDTO maps a slice of rows. The result is never nil.
func UsersToDTO(ms []model.User) []UserDTO {
	out := make([]UserDTO, 0, len(ms))
	for _, m := range ms {
		out = append(out, UserToDTO(m))
	}
	return out
}

// UserFromCreate builds a new row from a POST body.
func UserFromCreate(d CreateUserDTO) *model.User {
	return &model.User{
		FirstName: d.FirstName,
		LastName:  d.LastName,
		Email:     d.Email,
	}
}

// UserFromDTO builds a row from a PUT body; ID selects the row to edit.
func UserFromDTO(d UserDTO) *model.User {
	return &model.User{
		ID:        d.ID,
		FirstName: d.FirstName,
		LastName:  d.LastName,
		Email:     d.Email,
	}
}

func userRef(m *model.User) *UserDTO {
	if m == nil {
		return nil
	}
	d := UserToDTO(*m)
	return &d
}
