// Пакет unitid отвечает за текстовый формат инвентарного номера единицы
// оборудования: двузначный (с ведущим нулём) ID оборудования плюс
// четырёхзначный порядковый номер внутри этого оборудования, например
// оборудование 7, первая единица → "070001".
//
// Если ID оборудования или порядковый номер перерастают свой разряд,
// компоненты разделяются дефисом ("123-0001", "07-10000"): слитная запись
// переросших чисел неоднозначна, а по инвентарному номеру действует
// глобальное ограничение UNIQUE, поэтому кодирование обязано быть
// взаимно однозначным.
package unitid

import (
	"fmt"
	"strconv"
	"strings"

	apperrors "labstock/pkg/errors"
)

// Format собирает инвентарный номер из ID оборудования и порядкового номера.
func Format(equipmentID, sequence uint64) string {
	if equipmentID < 100 && sequence < 10000 {
		return fmt.Sprintf("%02d%04d", equipmentID, sequence)
	}
	return fmt.Sprintf("%02d-%04d", equipmentID, sequence)
}

// Sequence извлекает порядковый номер из инвентарного номера: часть после
// дефиса, а для слитной исторической записи — последние четыре цифры.
// Авторитетным значением остаётся столбец sequence_no.
func Sequence(unitID string) (uint64, error) {
	if idx := strings.LastIndexByte(unitID, '-'); idx >= 0 {
		seq, err := strconv.ParseUint(unitID[idx+1:], 10, 64)
		if err != nil {
			return 0, apperrors.NewInvalidInputError("инвентарный номер %q не содержит порядковой части", unitID)
		}
		return seq, nil
	}
	if len(unitID) < 4 {
		return 0, apperrors.NewInvalidInputError("слишком короткий инвентарный номер: %q", unitID)
	}
	seq, err := strconv.ParseUint(unitID[len(unitID)-4:], 10, 64)
	if err != nil {
		return 0, apperrors.NewInvalidInputError("инвентарный номер %q не содержит порядковой части", unitID)
	}
	return seq, nil
}
