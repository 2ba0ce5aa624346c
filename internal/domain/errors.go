package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound              = errors.New("recurso no encontrado")
	ErrUserNotFound          = errors.New("usuario no encontrado")
	ErrUsernameAlreadyExists = errors.New("el nombre de usuario ya está registrado")
	ErrInvalidInput          = errors.New("entrada inválida")
	ErrUnauthorized          = errors.New("no autorizado")
	ErrForbidden             = errors.New("acceso denegado")

	// Marketplace / ledger
	ErrInsufficientFunds   = errors.New("saldo virtual insuficiente")
	ErrInsufficientCredits = errors.New("créditos de carbono insuficientes")
	ErrAlreadySold         = errors.New("la publicación ya fue vendida")
	ErrSelfTrade           = errors.New("una organización no puede comprarse a sí misma")
	ErrInvalidOrganization = errors.New("organización inválida")

	// Aprobación de organizaciones
	ErrAlreadyDecided = errors.New("la organización ya fue aprobada o rechazada")

	// Registro de trayectos
	ErrDuplicateLog       = errors.New("ya existe un trayecto registrado para ese día")
	ErrDistanceNotSet     = errors.New("distancia de trayecto no configurada")
	ErrDistanceAlreadySet = errors.New("la distancia de trayecto ya fue configurada")
)
