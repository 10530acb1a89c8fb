package dtos

// CandidateCreationRequest mirrors the create-candidate form. The binding
// tags carry the input rules: required identity fields, email format,
// length caps, the closed source set, and a non-negative requested pay.
type CandidateCreationRequest struct {
	Name          string   `json:"name" binding:"required,max=100"`
	Email         string   `json:"email" binding:"required,email,max=100"`
	Source        string   `json:"source" binding:"required,oneof=Recruiter Referral Other"`
	SourceContact string   `json:"sourceContact" binding:"omitempty,max=100"`
	Position      string   `json:"position" binding:"required,max=100"`
	RequestedPay  *float64 `json:"requestedPay" binding:"omitempty,gte=0"`
}

type PositionCreationRequest struct {
	Title         string `json:"title" binding:"required,max=100"`
	Department    string `json:"department" binding:"required,oneof=Engineering Sales Management"`
	HiringManager string `json:"hiringManager" binding:"required,max=50"`
	Timeline      string `json:"timeline" binding:"required,oneof=Q1 Q2 Q3 Q4"`
}

// TransitionRequest asks the engine to record a stage outcome and move the
// candidate. Reviewer and notes are validated by the engine itself so their
// failures carry the engine's error kinds, not a binding error.
type TransitionRequest struct {
	TargetStatus string `json:"status" binding:"required"`
	CurrentStage string `json:"currentStage" binding:"required"`
	Reviewer     string `json:"reviewer"`
	Notes        string `json:"notes"`
	Action       string `json:"action" binding:"required,oneof=pass fail"`
}

// PositionStatusUpdateRequest is the direct position edit (no cascade).
type PositionStatusUpdateRequest struct {
	Status string `json:"status" binding:"required,oneof=Open closed"`
}
