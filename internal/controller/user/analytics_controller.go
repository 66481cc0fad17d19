package user

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"interviewiq-server/internal/controller"
	"interviewiq-server/internal/middleware"
	"interviewiq-server/internal/service"
)

type AnalyticsController struct {
	analyticsSvc service.AnalyticsService
	bankSvc      service.QuestionBankService
}

func NewAnalyticsController(analyticsSvc service.AnalyticsService, bankSvc service.QuestionBankService) *AnalyticsController {
	return &AnalyticsController{analyticsSvc: analyticsSvc, bankSvc: bankSvc}
}

func (ctrl *AnalyticsController) RegisterRoutes(private *gin.RouterGroup) {
	private.GET("/analytics/dashboard", ctrl.DashboardHandler)
	private.GET("/practice/questions", ctrl.PracticeQuestionsHandler)
}

// DashboardHandler godoc
// @Summary Get the caller's readiness dashboard
// @Description Overall score, readiness status, practice streak, score growth over time, and recurring weak areas
// @Tags analytics
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.AnalyticsSnapshotDTO
// @Router /analytics/dashboard [get]
func (ctrl *AnalyticsController) DashboardHandler(c *gin.Context) {
	resp, err := ctrl.analyticsSvc.Snapshot(middleware.UserID(c))
	if err != nil {
		controller.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// PracticeQuestionsHandler godoc
// @Summary Browse the question bank for self-study
// @Description Returns bank questions with ideal answers and common mistakes, optionally filtered by interview type
// @Tags practice
// @Produce json
// @Security BearerAuth
// @Param category query string false "Interview type filter (HR, Technical, Behavioral)"
// @Success 200 {array} dto.PracticeQuestionDTO
// @Failure 400 {object} dto.ErrorResponse "Unknown category"
// @Router /practice/questions [get]
func (ctrl *AnalyticsController) PracticeQuestionsHandler(c *gin.Context) {
	resp, err := ctrl.bankSvc.PracticeQuestions(c.Query("category"))
	if err != nil {
		controller.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
