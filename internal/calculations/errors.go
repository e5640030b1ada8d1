package calculations

import "errors"

var (
	// ErrInvalidPrincipal: сумма отсутствует, не число, ноль или отрицательна
	ErrInvalidPrincipal = errors.New("invalid principal")
	// ErrUnknownProduct: продукта нет в каталоге
	ErrUnknownProduct = errors.New("unknown product")
	// ErrTenorNotOffered: продукт не предлагает такой срок
	ErrTenorNotOffered = errors.New("tenor not offered by product")
	// ErrInvalidAge: возраст отрицательный или выше допустимого
	ErrInvalidAge = errors.New("invalid age")
	// ErrInvalidConvention: схема начисления не simple/compound
	ErrInvalidConvention = errors.New("invalid interest convention")
	// ErrNoRandomSource: для плавающего продукта не передан источник случайных чисел
	ErrNoRandomSource = errors.New("floating product requires a random source")
)
