package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"storengine/internal/models/request_models"
	"storengine/internal/services"
	"storengine/pkg/utils"
)

type AccountController struct {
	accountService services.IAccountService
}

func NewAccountController(accountService services.IAccountService) *AccountController {
	return &AccountController{
		accountService: accountService,
	}
}

// SignUp godoc
// @Summary Register a customer account
// @Description Register a customer account with email and password
// @Tags Accounts
// @Accept json
// @Produce json
// @Param request body request_models.SignUpRequest true "Sign Up Request"
// @Success 200 {object} utils.APIResponse
// @Router /accounts/register [post]
func (a *AccountController) SignUp(c *gin.Context) {
	var request request_models.SignUpRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request payload")
		return
	}

	user, err := a.accountService.Register(c.Request.Context(), request)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, gin.H{"id": user.ID, "email": user.Email}, "Account created successfully")
}

// SubmitQuiz godoc
// @Summary Submit a quiz result
// @Description Store a quiz submission and trigger any matching automations
// @Tags Accounts
// @Accept json
// @Produce json
// @Param request body request_models.QuizRecordRequest true "Quiz Record Request"
// @Success 200 {object} utils.APIResponse
// @Router /quiz-records [post]
func (a *AccountController) SubmitQuiz(c *gin.Context) {
	var request request_models.QuizRecordRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request payload")
		return
	}

	record, err := a.accountService.RecordQuiz(c.Request.Context(), request)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, gin.H{"id": record.ID}, "Quiz record stored successfully")
}
