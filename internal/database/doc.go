// Package database provides PostgreSQL connectivity and repositories.
//
// Uses pgx for connection pooling and tern for migrations. Repositories
// implement the domain interfaces: QuestionRepository, AnswerRepository,
// and the transactional VoteStorage backing the voting core.
package database
