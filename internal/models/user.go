package models

import "golang.org/x/crypto/bcrypt"

// User es un registro de credenciales. No se expone por HTTP.
type User struct {
	ID       string `json:"id" bson:"_id"`
	Username string `json:"username" bson:"username"`
	Password string `json:"-" bson:"password"`
}

type UserInput struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// NewUser arma el usuario guardando solo el hash bcrypt de la contraseña
func NewUser(id string, in UserInput) (User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return User{}, err
	}
	return User{ID: id, Username: in.Username, Password: string(hash)}, nil
}

// CheckPassword compara una contraseña en texto plano con el hash guardado
func (u User) CheckPassword(password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password)) == nil
}
