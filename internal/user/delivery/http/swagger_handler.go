package http

// Register godoc
// @Summary Register a new user
// @Description Create a new user account with the "user" role
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body object{username=string,email=string,password=string} true "User registration data"
// @Success 201 {object} Response{data=domain.User}
// @Failure 400 {object} Response
// @Failure 409 {object} Response
// @Router /auth/register [post]
func (h *UserHandler) RegisterDoc() {}

// Login godoc
// @Summary User login
// @Description Authenticate user and get JWT token
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body object{username=string,password=string} true "Login credentials"
// @Success 200 {object} Response{data=command.LoginResponse}
// @Failure 401 {object} Response
// @Router /auth/login [post]
func (h *UserHandler) LoginDoc() {}

// GetProfile godoc
// @Summary Get current user profile
// @Description Get authenticated user's profile information
// @Tags Users
// @Security BearerAuth
// @Produce json
// @Success 200 {object} Response{data=domain.User}
// @Failure 401 {object} Response
// @Failure 404 {object} Response
// @Router /users/me [get]
func (h *UserHandler) GetProfileDoc() {}

// CreateUser godoc
// @Summary Create user (admin)
// @Description Admin endpoint to create a new user with specified role
// @Tags Admin
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body object{username=string,email=string,password=string,role=string} true "User data"
// @Success 201 {object} Response{data=domain.User}
// @Failure 400 {object} Response
// @Failure 403 {object} Response
// @Router /admin/users [post]
func (h *UserHandler) CreateUserDoc() {}
