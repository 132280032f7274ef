package domain

import "errors"

// Ошибки доменного слоя. HTTP-слой мапит их на статусы:
// *NotFound -> 404, ErrAccessDenied/ErrPermissionDenied -> 403,
// ErrLastOwner/ErrDependencyViolation -> 409, остальное -> 500.
var (
	ErrUserNotFound    = errors.New("user not found")
	ErrProjectNotFound = errors.New("project not found")
	ErrTaskNotFound    = errors.New("task not found")
	ErrTeamNotFound    = errors.New("team not found")
	ErrCommentNotFound = errors.New("comment not found")
	ErrMemberNotFound  = errors.New("member not found")

	// Нет видимости сущности (не владелец, не участник, не через команду)
	ErrAccessDenied = errors.New("access denied")
	// Сущность видна, но роли недостаточно (удаление чужого проекта,
	// правка чужого комментария и т.п.)
	ErrPermissionDenied = errors.New("permission denied")

	// Последнего владельца команды нельзя удалить или понизить
	ErrLastOwner = errors.New("cannot remove the last owner of a team")

	// Перенос задачи нарушил бы сроки ее зависимостей
	ErrDependencyViolation = errors.New("move would violate task dependencies")
)
