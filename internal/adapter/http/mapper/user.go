package mapper

import (
	"taskflow/internal/adapter/http/dto"
	"taskflow/internal/core/domain"
)

func ToAuthResponse(result domain.AuthResult) dto.AuthResponse {
	return dto.AuthResponse{
		Token: result.Token,
		User: dto.UserItem{
			ID:    result.User.ID,
			Email: result.User.Email,
			Name:  result.User.Name,
		},
	}
}
