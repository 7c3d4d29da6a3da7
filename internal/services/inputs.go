package services

import (
	"net/url"
	"strings"

	"roleplay/api/internal/utils"
)

// CreateGroupInput is the body of POST /groups.
type CreateGroupInput struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Chronic     string `json:"chronic"`
	Schedule    string `json:"schedule"`
	Location    string `json:"location"`
	Master      uint   `json:"master"`
}

func (in *CreateGroupInput) Validate() error {
	required := []struct{ field, value string }{
		{"name", in.Name},
		{"description", in.Description},
		{"chronic", in.Chronic},
		{"schedule", in.Schedule},
		{"location", in.Location},
	}
	for _, r := range required {
		if strings.TrimSpace(r.value) == "" {
			return invalidInput(r.field + " is required")
		}
	}
	if in.Master == 0 {
		return invalidInput("master is required")
	}
	return nil
}

// UpdateGroupInput carries the descriptive fields to merge; nil fields are left unchanged.
type UpdateGroupInput struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Chronic     *string `json:"chronic"`
	Schedule    *string `json:"schedule"`
	Location    *string `json:"location"`
}

func (in *UpdateGroupInput) Validate() error {
	_, err := in.changes()
	return err
}

func (in *UpdateGroupInput) changes() (map[string]interface{}, error) {
	changes := map[string]interface{}{}
	fields := []struct {
		column string
		value  *string
	}{
		{"name", in.Name},
		{"description", in.Description},
		{"chronic", in.Chronic},
		{"schedule", in.Schedule},
		{"location", in.Location},
	}
	for _, f := range fields {
		if f.value == nil {
			continue
		}
		if strings.TrimSpace(*f.value) == "" {
			return nil, invalidInput(f.column + " must not be empty")
		}
		changes[f.column] = *f.value
	}
	return changes, nil
}

// ListGroupsInput filters GET /groups. A nil UserID disables the member filter.
type ListGroupsInput struct {
	UserID *uint
	Text   string
}

// CreateUserInput is the body of POST /users.
type CreateUserInput struct {
	Email    string `json:"email"`
	Username string `json:"username"`
	Password string `json:"password"`
	Avatar   string `json:"avatar"`
}

func (in *CreateUserInput) Validate() error {
	if in.Email == "" || in.Username == "" || in.Password == "" {
		return invalidInput("email, username and password are required")
	}
	if !utils.IsEmailValid(in.Email) {
		return invalidInput("invalid email")
	}
	if !utils.IsPasswordValid(in.Password) {
		return invalidInput("password must have at least 4 characters")
	}
	if in.Avatar != "" && !utils.IsURLValid(in.Avatar) {
		return invalidInput("invalid avatar url")
	}
	return nil
}

// UpdateUserInput is the body of PUT /users/{id}.
type UpdateUserInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Avatar   string `json:"avatar"`
}

func (in *UpdateUserInput) Validate() error {
	if in.Email == "" || in.Password == "" || in.Avatar == "" {
		return invalidInput("email, password and avatar are required")
	}
	if !utils.IsEmailValid(in.Email) {
		return invalidInput("invalid email")
	}
	if !utils.IsPasswordValid(in.Password) {
		return invalidInput("password must have at least 4 characters")
	}
	if !utils.IsURLValid(in.Avatar) {
		return invalidInput("invalid avatar url")
	}
	return nil
}

// LoginInput is the body of POST /sessions.
type LoginInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (in *LoginInput) Validate() error {
	if in.Email == "" || in.Password == "" {
		return badRequest("email and password are required")
	}
	return nil
}

// RequestResetInput is the body of POST /forgot-password.
type RequestResetInput struct {
	Email            string `json:"email"`
	ResetPasswordURL string `json:"resetPasswordUrl"`
}

func (in *RequestResetInput) Validate() error {
	if in.Email == "" || !utils.IsEmailValid(in.Email) {
		return invalidInput("invalid email")
	}
	if strings.TrimSpace(in.ResetPasswordURL) == "" {
		return invalidInput("resetPasswordUrl is required")
	}
	if _, err := url.Parse(in.ResetPasswordURL); err != nil {
		return invalidInput("invalid resetPasswordUrl")
	}
	return nil
}

// ConsumeResetInput is the body of POST /reset-password.
type ConsumeResetInput struct {
	Token    string `json:"token"`
	Password string `json:"password"`
}

func (in *ConsumeResetInput) Validate() error {
	if strings.TrimSpace(in.Token) == "" {
		return invalidInput("token is required")
	}
	if !utils.IsPasswordValid(in.Password) {
		return invalidInput("password must have at least 4 characters")
	}
	return nil
}
