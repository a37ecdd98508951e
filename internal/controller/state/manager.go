package state

import (
	"sync"
)

// Manager хранит диалоги пользователей в памяти процесса.
// Сессии и токены здесь не лежат, только выбор внутри диалога.
type Manager struct {
	mu      sync.RWMutex
	dialogs map[int64]Dialog // telegramID -> Dialog
}

// NewManager создаёт новый менеджер состояний
func NewManager() *Manager {
	return &Manager{
		dialogs: make(map[int64]Dialog),
	}
}

// Get возвращает копию диалога; для нового пользователя пустой Dialog
func (sm *Manager) Get(telegramID int64) Dialog {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	return sm.dialogs[telegramID]
}

// GetState получает текущее состояние пользователя
func (sm *Manager) GetState(telegramID int64) UserState {
	return sm.Get(telegramID).State
}

// Set заменяет диалог целиком
func (sm *Manager) Set(telegramID int64, d Dialog) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if d.State == StateNone {
		delete(sm.dialogs, telegramID)
		return
	}
	sm.dialogs[telegramID] = d
}

// Update меняет диалог под блокировкой.
// Если после fn состояние пустое, запись удаляется.
func (sm *Manager) Update(telegramID int64, fn func(d *Dialog)) Dialog {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	d := sm.dialogs[telegramID]
	fn(&d)
	if d.State == StateNone {
		delete(sm.dialogs, telegramID)
	} else {
		sm.dialogs[telegramID] = d
	}
	return d
}

// ClearState очищает состояние и данные пользователя
func (sm *Manager) ClearState(telegramID int64) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	delete(sm.dialogs, telegramID)
}

// Len число активных диалогов
func (sm *Manager) Len() int {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	return len(sm.dialogs)
}
