package domain

// AppService is the application-layer surface consumed by the HTTP server.
type AppService interface {
	QuestionService
	AnswerService
	VoteService
}
