package idgen

import (
	"fmt"

	"github.com/google/uuid"
)

// Generator генератор непрозрачных идентификаторов с префиксом сущности
// (например, "book_9f1c...", "brl_03ab..."). Внедряется явной зависимостью,
// глобального состояния нет.
type Generator struct {
	prefix string
}

// New создает генератор идентификаторов с заданным префиксом
func New(prefix string) *Generator {
	return &Generator{prefix: prefix}
}

// NewID возвращает новый уникальный идентификатор
func (g *Generator) NewID() string {
	return fmt.Sprintf("%s_%s", g.prefix, uuid.NewString())
}
