package dto

import (
	"github.com/xiebiao/bookcatalog/internal/domain/author"
)

// AuthorRequest 登记作者
type AuthorRequest struct {
	FirstName string `json:"first_name" binding:"required,max=100" example:"Ursula"`
	LastName  string `json:"last_name" binding:"required,max=100" example:"Le Guin"`
	Biography string `json:"biography" binding:"max=5000"`
	Publisher string `json:"publisher" binding:"max=100" example:"Ace"`
}

// ToEntity 转换为领域实体
func (r *AuthorRequest) ToEntity() *author.Author {
	return author.NewAuthor(r.FirstName, r.LastName, r.Biography, r.Publisher)
}

// RegisterAuthorsRequest 批量登记作者
type RegisterAuthorsRequest struct {
	Authors []AuthorRequest `json:"authors" binding:"required,min=1,dive"`
}

// AuthorResponse 作者响应
type AuthorResponse struct {
	ID        uint   `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Biography string `json:"biography,omitempty"`
	Publisher string `json:"publisher"`
	CreatedAt string `json:"created_at"`
}

// ToAuthorResponse 领域实体 → HTTP响应
func ToAuthorResponse(a *author.Author) AuthorResponse {
	return AuthorResponse{
		ID:        a.ID,
		FirstName: a.FirstName,
		LastName:  a.LastName,
		Biography: a.Biography,
		Publisher: a.Publisher,
		CreatedAt: a.CreatedAt.Format(TimeLayout),
	}
}

// ToAuthorResponses 批量转换
func ToAuthorResponses(authors []*author.Author) []AuthorResponse {
	out := make([]AuthorResponse, len(authors))
	for i, a := range authors {
		out[i] = ToAuthorResponse(a)
	}
	return out
}
