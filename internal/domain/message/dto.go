package message

// PushInput carries a notification about to be stored and pushed.
type PushInput struct {
	Title   string `json:"title" binding:"required"`
	Image   string `json:"image"`
	Message string `json:"message" binding:"required"`
	UserID  int64  `json:"userId" binding:"required"`
}
