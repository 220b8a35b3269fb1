package handler

import (
	"github.com/taskhub/task-management-api/internal/core/domain"
	"github.com/taskhub/task-management-api/internal/core/ports"
)

func toTaskResponse(t domain.Task) taskResponse {
	return taskResponse{
		ID:          t.ID,
		Header:      t.Header,
		Description: t.Description,
		Status:      string(t.Status),
		Priority:    string(t.Priority),
		Author:      personResponse{Email: t.AuthorEmail},
		Performer:   personResponse{Email: t.PerformerEmail},
		CreatedAt:   t.CreatedAt,
	}
}

func toTaskDetailResponse(d *ports.TaskDetail) taskResponse {
	resp := toTaskResponse(d.Task)
	if len(d.Comments) > 0 {
		resp.Comments = make([]commentResponse, 0, len(d.Comments))
		for _, c := range d.Comments {
			resp.Comments = append(resp.Comments, toCommentResponse(c))
		}
	}
	return resp
}

func toCommentResponse(c domain.Comment) commentResponse {
	return commentResponse{
		ID:        c.ID,
		Author:    c.Author,
		Text:      c.Text,
		CreatedAt: c.CreatedAt,
	}
}

func toTaskSliceResponse(s *ports.TaskSlice) taskSliceResponse {
	content := make([]taskResponse, 0, len(s.Tasks))
	for _, t := range s.Tasks {
		content = append(content, toTaskResponse(t))
	}
	return taskSliceResponse{Content: content, HasNext: s.HasNext}
}
