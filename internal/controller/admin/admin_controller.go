package admin

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"interviewiq-server/internal/controller"
	"interviewiq-server/internal/service"
)

type AdminController struct {
	analyticsSvc service.AnalyticsService
}

func NewAdminController(analyticsSvc service.AnalyticsService) *AdminController {
	return &AdminController{analyticsSvc: analyticsSvc}
}

func (ctrl *AdminController) RegisterRoutes(adminGroup *gin.RouterGroup) {
	adminGroup.GET("/dashboard", ctrl.DashboardHandler)
	adminGroup.GET("/users", ctrl.UsersHandler)
	adminGroup.GET("/users/:id", ctrl.UserDetailHandler)
	adminGroup.GET("/insights", ctrl.InsightsHandler)
}

// DashboardHandler godoc
// @Summary Platform-wide readiness dashboard
// @Description Candidate counts by readiness, weekly activity, platform average score, and top and bottom performers
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.AdminDashboardDTO
// @Failure 403 {object} dto.ErrorResponse "Admin access required"
// @Router /admin/dashboard [get]
func (ctrl *AdminController) DashboardHandler(c *gin.Context) {
	resp, err := ctrl.analyticsSvc.Dashboard()
	if err != nil {
		controller.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// UsersHandler godoc
// @Summary List all candidates with performance summaries
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {array} dto.UserPerformanceDTO
// @Failure 403 {object} dto.ErrorResponse "Admin access required"
// @Router /admin/users [get]
func (ctrl *AdminController) UsersHandler(c *gin.Context) {
	resp, err := ctrl.analyticsSvc.Users()
	if err != nil {
		controller.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// UserDetailHandler godoc
// @Summary Detailed view of one candidate
// @Description The candidate's profile, interview history, growth curve, and weak areas
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param id path int true "User ID"
// @Success 200 {object} dto.AdminUserDetailDTO
// @Failure 403 {object} dto.ErrorResponse "Admin access required"
// @Failure 404 {object} dto.ErrorResponse "User not found"
// @Router /admin/users/{id} [get]
func (ctrl *AdminController) UserDetailHandler(c *gin.Context) {
	userID, ok := controller.ParseID(c, "id")
	if !ok {
		return
	}

	resp, err := ctrl.analyticsSvc.UserDetail(userID)
	if err != nil {
		controller.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// InsightsHandler godoc
// @Summary Platform-wide answer insights
// @Description Most common identified weaknesses, most failed questions, and the candidate confidence distribution
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.PlatformInsightsDTO
// @Failure 403 {object} dto.ErrorResponse "Admin access required"
// @Router /admin/insights [get]
func (ctrl *AdminController) InsightsHandler(c *gin.Context) {
	resp, err := ctrl.analyticsSvc.Insights()
	if err != nil {
		controller.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
