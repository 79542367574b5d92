package handler

import (
	"mingle/internal/usecase"

	"github.com/google/uuid"
)

// userResponse is the public account summary as it goes over the wire.
type userResponse struct {
	ID       uuid.UUID `json:"id"`
	Username string    `json:"username"`
	Headline string    `json:"headline"`
	Likes    int       `json:"likes"`
}

func newUserResponse(out *usecase.UserOutput) userResponse {
	return userResponse{
		ID:       out.ID,
		Username: out.Username,
		Headline: out.Headline,
		Likes:    out.Likes,
	}
}

func newUserResponseList(outs []*usecase.UserOutput) []userResponse {
	responses := make([]userResponse, 0, len(outs))
	for _, out := range outs {
		responses = append(responses, newUserResponse(out))
	}

	return responses
}

// contactBody is one contact entry in profile requests and responses.
type contactBody struct {
	Type  string `json:"type" validate:"required,max=20"`
	Value string `json:"value" validate:"required,max=100"`
}

// profileResponse is the public profile as it goes over the wire.
type profileResponse struct {
	Headline string        `json:"headline"`
	Bio      string        `json:"bio"`
	Likes    int           `json:"likes"`
	Contacts []contactBody `json:"contacts"`
}

func newProfileResponse(out *usecase.ProfileOutput) profileResponse {
	contacts := make([]contactBody, 0, len(out.Contacts))
	for _, contact := range out.Contacts {
		contacts = append(contacts, contactBody{Type: contact.Type, Value: contact.Value})
	}

	return profileResponse{
		Headline: out.Headline,
		Bio:      out.Bio,
		Likes:    out.Likes,
		Contacts: contacts,
	}
}

// tokenPairResponse carries a freshly issued token pair.
type tokenPairResponse struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh"`
}
