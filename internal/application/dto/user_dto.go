package dto

// LoginRequest credenciales del formulario de inicio de sesión.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// SessionUser perfil guardado en la sesión (lo que antes vivía en el navegador).
type SessionUser struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

// LoginResponse token del portal + ruta del tablero del rol.
type LoginResponse struct {
	Token string      `json:"token"`
	Home  string      `json:"home"`
	User  SessionUser `json:"user"`
}

// UserForm alta de usuario por el superadmin.
type UserForm struct {
	Name     string `json:"name" validate:"required,min=2,max=200"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	Role     string `json:"role" validate:"required,oneof=superadmin admin employee"`
	Phone    string `json:"phone" validate:"omitempty,max=30"`
}

// UserUpdateForm edición de usuario; password vacío no se cambia.
type UserUpdateForm struct {
	Name     string `json:"name" validate:"required,min=2,max=200"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password,omitempty" validate:"omitempty,min=6"`
	Role     string `json:"role" validate:"required,oneof=superadmin admin employee"`
	Phone    string `json:"phone" validate:"omitempty,max=30"`
}

// UserView fila de la tabla de usuarios.
type UserView struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
	Phone string `json:"phone,omitempty"`
}
