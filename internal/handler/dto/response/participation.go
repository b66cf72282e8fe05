package response

import (
	"commerce-booking/internal/domain/directory"
	"commerce-booking/internal/usecase/queries"
)

type ParticipationStatusResponse struct {
	EventID       string `json:"eventId"`
	Participating bool   `json:"participating"`
}

type ParticipantResponse struct {
	UserID   string `json:"userId"`
	Name     string `json:"name"`
	JoinedAt int64  `json:"joinedAt"`
}

type EventParticipantsResponse struct {
	EventID      string                 `json:"eventId"`
	Title        string                 `json:"title"`
	Count        int                    `json:"count"`
	Participants []*ParticipantResponse `json:"participants"`
}

func FromEventParticipantsView(v *queries.EventParticipantsView) *EventParticipantsResponse {
	items := make([]*ParticipantResponse, len(v.Participants))
	for i, p := range v.Participants {
		items[i] = &ParticipantResponse{
			UserID:   p.UserID,
			Name:     p.Name,
			JoinedAt: p.JoinedAt.Unix(),
		}
	}
	return &EventParticipantsResponse{
		EventID:      v.EventID,
		Title:        v.Title,
		Count:        len(items),
		Participants: items,
	}
}

type ProfileResponse struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Email    string `json:"email,omitempty"`
	Kind     string `json:"kind"`
	Priority string `json:"priority"`
}

func FromProfile(p *directory.Profile) *ProfileResponse {
	return &ProfileResponse{
		ID:       p.ID,
		Name:     p.Name(),
		Email:    p.Email,
		Kind:     string(p.Kind),
		Priority: string(p.Priority),
	}
}
