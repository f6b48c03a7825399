// README: Account handlers: signup and login.
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"cabway/internal/modules/user"
)

type UserHandler struct {
	users *user.Service
}

func NewUserHandler(svc *user.Service) *UserHandler {
	return &UserHandler{users: svc}
}

type userResp struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

func toUserResp(u *user.User) userResp {
	return userResp{ID: string(u.ID), Name: u.Name, Email: u.Email, Role: string(u.Role)}
}

type signupReq struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

func (h *UserHandler) Signup(c *gin.Context) {
	var req signupReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "validation_error", "invalid json")
		return
	}
	// admin accounts are provisioned out of band, never via signup
	if req.Role == string(user.RoleAdmin) {
		writeError(c, http.StatusBadRequest, "validation_error", "cannot sign up as admin")
		return
	}
	u, err := h.users.Signup(c.Request.Context(), req.Name, req.Email, req.Password, user.Role(req.Role))
	if err != nil {
		writeDomainError(c, err)
		return
	}
	writeJSON(c, http.StatusCreated, toUserResp(u))
}

type loginReq struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResp struct {
	Token string   `json:"token"`
	User  userResp `json:"user"`
}

// ListAll is the administrative account listing. Password hashes are
// never included in the response.
func (h *UserHandler) ListAll(c *gin.Context) {
	users, err := h.users.List(c.Request.Context())
	if err != nil {
		writeDomainError(c, err)
		return
	}
	out := make([]userResp, 0, len(users))
	for _, u := range users {
		out = append(out, toUserResp(u))
	}
	writeJSON(c, http.StatusOK, out)
}

func (h *UserHandler) Login(c *gin.Context) {
	var req loginReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "validation_error", "invalid json")
		return
	}
	u, token, err := h.users.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		writeDomainError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, loginResp{Token: token, User: toUserResp(u)})
}
