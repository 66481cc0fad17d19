package user

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"interviewiq-server/internal/apperr"
	"interviewiq-server/internal/controller"
	"interviewiq-server/internal/dto"
	"interviewiq-server/internal/middleware"
	"interviewiq-server/internal/service"
)

type InterviewController struct {
	sessionSvc service.SessionService
}

func NewInterviewController(sessionSvc service.SessionService) *InterviewController {
	return &InterviewController{sessionSvc: sessionSvc}
}

func (ctrl *InterviewController) RegisterRoutes(private *gin.RouterGroup) {
	interviews := private.Group("/interviews")
	interviews.POST("", ctrl.StartInterviewHandler)
	interviews.GET("", ctrl.HistoryHandler)
	interviews.POST("/:id/answers", ctrl.SubmitAnswerHandler)
	interviews.POST("/:id/complete", ctrl.CompleteInterviewHandler)
	interviews.GET("/:id/evaluation", ctrl.GetEvaluationHandler)
}

// StartInterviewHandler godoc
// @Summary Start a new mock interview session
// @Description Creates an in-progress session and returns the first question at baseline difficulty
// @Tags interviews
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param interview body dto.StartInterviewRequest true "Interview type and optional focus area"
// @Success 201 {object} dto.StartInterviewResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid interview type"
// @Failure 503 {object} dto.ErrorResponse "Question bank exhausted"
// @Router /interviews [post]
func (ctrl *InterviewController) StartInterviewHandler(c *gin.Context) {
	var req dto.StartInterviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn().Err(err).Msg("Failed to bind StartInterviewRequest")
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Code: string(apperr.CodeInvalidInput), Message: err.Error()})
		return
	}

	resp, err := ctrl.sessionSvc.Start(c.Request.Context(), middleware.UserID(c), req)
	if err != nil {
		controller.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// SubmitAnswerHandler godoc
// @Summary Submit an answer for the current question
// @Description Stores the answer, scores it, and returns the evaluation plus the next question. Retryable 503 means the answer was saved but scoring is pending; resubmit the same question.
// @Tags interviews
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Interview ID"
// @Param answer body dto.SubmitAnswerRequest true "Question id and answer text"
// @Success 200 {object} dto.SubmitAnswerResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid request body or empty answer"
// @Failure 404 {object} dto.ErrorResponse "Interview not found"
// @Failure 409 {object} dto.ErrorResponse "Answer out of sequence or interview already completed"
// @Failure 503 {object} dto.ErrorResponse "Evaluator unavailable; retry the same submission"
// @Router /interviews/{id}/answers [post]
func (ctrl *InterviewController) SubmitAnswerHandler(c *gin.Context) {
	interviewID, ok := controller.ParseID(c, "id")
	if !ok {
		return
	}
	var req dto.SubmitAnswerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Code: string(apperr.CodeInvalidInput), Message: err.Error()})
		return
	}

	resp, err := ctrl.sessionSvc.SubmitAnswer(c.Request.Context(), middleware.UserID(c), interviewID, req)
	if err != nil {
		controller.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// CompleteInterviewHandler godoc
// @Summary Finalize a fully answered interview
// @Description Aggregates the five answer evaluations into the interview-level evaluation. Idempotent: repeat calls return the stored result.
// @Tags interviews
// @Produce json
// @Security BearerAuth
// @Param id path int true "Interview ID"
// @Success 200 {object} dto.EvaluationDTO
// @Failure 404 {object} dto.ErrorResponse "Interview not found"
// @Failure 409 {object} dto.ErrorResponse "Interview has unanswered or unscored questions"
// @Router /interviews/{id}/complete [post]
func (ctrl *InterviewController) CompleteInterviewHandler(c *gin.Context) {
	interviewID, ok := controller.ParseID(c, "id")
	if !ok {
		return
	}

	resp, err := ctrl.sessionSvc.Complete(c.Request.Context(), middleware.UserID(c), interviewID)
	if err != nil {
		controller.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// HistoryHandler godoc
// @Summary List the caller's interviews
// @Description Returns all of the caller's interviews, most recently started first
// @Tags interviews
// @Produce json
// @Security BearerAuth
// @Success 200 {array} dto.InterviewSummaryDTO
// @Router /interviews [get]
func (ctrl *InterviewController) HistoryHandler(c *gin.Context) {
	resp, err := ctrl.sessionSvc.History(middleware.UserID(c))
	if err != nil {
		log.Error().Err(err).Uint("userID", middleware.UserID(c)).Msg("Failed to load interview history")
		controller.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// GetEvaluationHandler godoc
// @Summary Get the stored evaluation of a completed interview
// @Tags interviews
// @Produce json
// @Security BearerAuth
// @Param id path int true "Interview ID"
// @Success 200 {object} dto.EvaluationDTO
// @Failure 404 {object} dto.ErrorResponse "Interview or evaluation not found"
// @Router /interviews/{id}/evaluation [get]
func (ctrl *InterviewController) GetEvaluationHandler(c *gin.Context) {
	interviewID, ok := controller.ParseID(c, "id")
	if !ok {
		return
	}

	resp, err := ctrl.sessionSvc.Evaluation(middleware.UserID(c), interviewID)
	if err != nil {
		controller.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
