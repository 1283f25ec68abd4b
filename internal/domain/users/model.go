package users

import "time"

// User es una cuenta registrada. PasswordHash solo viaja entre el servicio y
// el repositorio; los métodos exportados de Service lo devuelven vacío.
type User struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string
	Phone        string
	CreatedAt    time.Time
}

func (u User) withoutHash() User {
	u.PasswordHash = ""
	return u
}
