package dto

type CreateProjectRequest struct {
	Name        string `json:"name" validate:"required"`
	Description string `json:"description"`
	OwnerID     string `json:"owner_id" validate:"required,uuid"`
}

type AddMemberRequest struct {
	UserID  string `json:"user_id" validate:"required,uuid"`
	ActorID string `json:"actor_id" validate:"required,uuid"`
}

type ProjectResponse struct {
	ID          string             `json:"id"`
	Name        string             `json:"name"`
	Description string             `json:"description,omitempty"`
	OwnerID     string             `json:"owner_id"`
	MemberIDs   []string           `json:"member_ids,omitempty"`
	CreatedAt   string             `json:"created_at"`
	Documents   []DocumentResponse `json:"documents,omitempty"`
}
