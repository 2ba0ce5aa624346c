// Package memory implementa los puertos de persistencia sobre mapas en
// memoria. Se usa en modo demo (STORAGE_DRIVER=memory) y en los tests de la
// capa de aplicación. Un RWMutex a nivel de store serializa las transacciones;
// el rollback se implementa con snapshot/restore de los mapas.
package memory

import (
	"sync"

	"github.com/ecovia/carbon-market-api/internal/domain/entity"
)

// Store contenedor de todos los mapas de entidades.
// Los mapas guardan valores (no punteros): los repos devuelven copias y el
// snapshot de transacción es una copia superficial segura.
type Store struct {
	mu            sync.RWMutex
	users         map[string]entity.User
	organizations map[string]entity.Organization
	commuteLogs   map[string]entity.CommuteLog
	listings      map[string]entity.Listing
}

// NewStore construye un store vacío.
func NewStore() *Store {
	return &Store{
		users:         make(map[string]entity.User),
		organizations: make(map[string]entity.Organization),
		commuteLogs:   make(map[string]entity.CommuteLog),
		listings:      make(map[string]entity.Listing),
	}
}

// snapshot copia el estado completo del store. Debe llamarse con mu tomado.
type snapshot struct {
	users         map[string]entity.User
	organizations map[string]entity.Organization
	commuteLogs   map[string]entity.CommuteLog
	listings      map[string]entity.Listing
}

func (s *Store) snapshot() snapshot {
	return snapshot{
		users:         cloneMap(s.users),
		organizations: cloneMap(s.organizations),
		commuteLogs:   cloneMap(s.commuteLogs),
		listings:      cloneMap(s.listings),
	}
}

// restore revierte el store al snapshot. Debe llamarse con mu tomado.
func (s *Store) restore(snap snapshot) {
	s.users = snap.users
	s.organizations = snap.organizations
	s.commuteLogs = snap.commuteLogs
	s.listings = snap.listings
}

func cloneMap[V any](m map[string]V) map[string]V {
	out := make(map[string]V, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
