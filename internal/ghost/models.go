package ghost

import (
	"encoding/json"

	"ghost_migrator/internal/domain"
)

// Admin API response structures, transformed to domain remote types before
// leaving this package.

type rolesResponse struct {
	Roles []roleJSON `json:"roles"`
}

type roleJSON struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type postsResponse struct {
	Posts []postJSON `json:"posts"`
}

type postJSON struct {
	ID            string    `json:"id"`
	Slug          string    `json:"slug"`
	Title         string    `json:"title"`
	Status        string    `json:"status"`
	UpdatedAt     string    `json:"updated_at"`
	PrimaryAuthor *userJSON `json:"primary_author"`
}

type usersResponse struct {
	Users []userJSON `json:"users"`
}

type userJSON struct {
	ID        string     `json:"id"`
	Slug      string     `json:"slug"`
	Name      string     `json:"name"`
	Email     string     `json:"email"`
	UpdatedAt string     `json:"updated_at"`
	Roles     []roleJSON `json:"roles"`
}

type sessionRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type updatePostsRequest struct {
	Posts []postUpdate `json:"posts"`
}

type postUpdate struct {
	UpdatedAt     string  `json:"updated_at"`
	PrimaryAuthor idRef   `json:"primary_author"`
	Authors       []idRef `json:"authors"`
}

type updateUsersRequest struct {
	Users []userUpdate `json:"users"`
}

type userUpdate struct {
	UpdatedAt string  `json:"updated_at"`
	Roles     []idRef `json:"roles"`
}

type idRef struct {
	ID string `json:"id"`
}

type importResponse struct {
	Problems []json.RawMessage `json:"problems"`
}

func (r roleJSON) toDomain() domain.RemoteRole {
	return domain.RemoteRole{ID: r.ID, Name: r.Name}
}

func (u userJSON) toDomain() domain.RemoteUser {
	user := domain.RemoteUser{
		ID:        u.ID,
		Slug:      u.Slug,
		Name:      u.Name,
		Email:     u.Email,
		UpdatedAt: u.UpdatedAt,
	}
	for _, r := range u.Roles {
		user.Roles = append(user.Roles, r.toDomain())
	}
	return user
}

func (p postJSON) toDomain() domain.RemotePost {
	post := domain.RemotePost{
		ID:        p.ID,
		Slug:      p.Slug,
		Title:     p.Title,
		Status:    p.Status,
		UpdatedAt: p.UpdatedAt,
	}
	if p.PrimaryAuthor != nil {
		author := p.PrimaryAuthor.toDomain()
		post.PrimaryAuthor = &author
	}
	return post
}
