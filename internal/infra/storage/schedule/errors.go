package schedule

import (
	"errors"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

var (
	// ErrTemplateNotFound возвращается, когда шаблона нет (совпадает с domain.ErrTemplateNotFound)
	ErrTemplateNotFound = domain.ErrTemplateNotFound

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("schedule.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("schedule.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("schedule.repository: failed to scan row")

	// ErrInvalidRow возвращается, когда строка в БД нарушает инварианты расписания
	ErrInvalidRow = errors.New("schedule.repository: invalid schedule row")
)
