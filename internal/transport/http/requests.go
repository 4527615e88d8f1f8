package http

type submitBugRequest struct {
	ProjectID        string   `json:"project_id" validate:"required"`
	Title            string   `json:"title" validate:"required,max=200"`
	Description      string   `json:"description" validate:"required"`
	Category         string   `json:"category" validate:"required,category"`
	Severity         string   `json:"severity" validate:"required,severity"`
	StepsToReproduce string   `json:"steps_to_reproduce"`
	ExpectedBehavior string   `json:"expected_behavior"`
	ActualBehavior   string   `json:"actual_behavior"`
	Attachments      []string `json:"attachments" validate:"omitempty,dive,required"`
}

// approveBugRequest may be sent with an empty body; Severity overrides the tester's estimate.
type approveBugRequest struct {
	Severity *string `json:"severity" validate:"omitempty,severity"`
}

type rejectBugRequest struct {
	Reason string `json:"reason" validate:"required"`
}

type addCommentRequest struct {
	Comment string `json:"comment" validate:"required"`
}

type createUserRequest struct {
	ID    string `json:"id" validate:"omitempty,custom_id"`
	Name  string `json:"name" validate:"required"`
	Email string `json:"email" validate:"required,email"`
	Role  string `json:"role" validate:"required,role"`
}

type createProjectRequest struct {
	Name         string `json:"name" validate:"required"`
	Description  string `json:"description"`
	MaintainerID string `json:"maintainer_id"`
}

type updateProjectStatusRequest struct {
	Status string `json:"status" validate:"required,project_status"`
}
