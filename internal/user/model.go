package user

type User struct {
	ID           int    `json:"id"`
	Handle       string `json:"handle"`
	Password     string `json:"-"`
	ProfileImage string `json:"profileImage"`
}

// Profile is the projection exposed by search and relationship listings.
type Profile struct {
	Handle       string `json:"handle"`
	ProfileImage string `json:"profileImage"`
}

type RegisterRequest struct {
	Handle       string `json:"handle" validate:"required,min=3,max=50"`
	Password     string `json:"password" validate:"required,min=5"`
	ProfileImage string `json:"imageUrl" validate:"omitempty,max=2048"`
}

type LoginRequest struct {
	Handle   string `json:"handle" validate:"required,min=3"`
	Password string `json:"password" validate:"required,min=5"`
}

type LoginResponse struct {
	AccessToken string `json:"-"`
	ID          int    `json:"id"`
	Handle      string `json:"handle"`
}

type MeResponse struct {
	UserID       int    `json:"userId"`
	Handle       string `json:"username"`
	ProfileImage string `json:"profileImage"`
}
