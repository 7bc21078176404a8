package services

import "sync"

// Locker сериализует изменения одного предложения и отделяет их от удалений клиентов и участников.
type Locker struct {
	refs  sync.RWMutex
	mu    sync.Mutex
	locks map[string]*keyedLock
}

type keyedLock struct {
	mu      sync.Mutex
	waiters int
}

// NewLocker создаёт новый экземпляр Locker.
func NewLocker() *Locker {
	return &Locker{locks: make(map[string]*keyedLock)}
}

// LockProposal захватывает блокировку предложения и возвращает функцию освобождения.
// Пока блокировка удерживается, удаления клиентов и участников ждут.
func (l *Locker) LockProposal(proposalId string) func() {
	l.refs.RLock()

	l.mu.Lock()
	kl, ok := l.locks[proposalId]
	if !ok {
		kl = &keyedLock{}
		l.locks[proposalId] = kl
	}
	kl.waiters++
	l.mu.Unlock()

	kl.mu.Lock()
	return func() {
		kl.mu.Unlock()

		l.mu.Lock()
		kl.waiters--
		if kl.waiters == 0 {
			delete(l.locks, proposalId)
		}
		l.mu.Unlock()

		l.refs.RUnlock()
	}
}

// LockReferences захватывает эксклюзивную блокировку для проверок ссылок перед удалением.
func (l *Locker) LockReferences() func() {
	l.refs.Lock()
	return l.refs.Unlock
}
