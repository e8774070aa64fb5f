package api

import (
	"bytes"
	"fmt"
	"io"
	"time"

	"carteira/internal/app"
	"carteira/internal/domain"
	"carteira/internal/logger"
	"carteira/internal/repository"
	"carteira/internal/service"
	"carteira/internal/util"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type ApiHandler struct {
	AnalysisHandler      *app.AnalysisHandler
	ExpressionService    app.ExpressionService
	QuoteService         service.QuoteService
	DraftRepository      repository.DraftRepository
	ApiRequestRepository repository.ApiRequestRepository

	JwtSecret      string
	AllowedOrigins []string
}

func (m ApiHandler) InitializeRouterEngine() *gin.Engine {
	router := gin.Default()
	router.Use(m.corsMiddleware())

	log := logger.New()
	router.Use(func(c *gin.Context) {
		c.Request = c.Request.WithContext(logger.AddToContext(c.Request.Context(), log))
		c.Next()
	})

	// the request log wraps auth so rejected requests are recorded too
	router.Use(m.logRequestMiddleware)
	router.Use(m.authMiddleware)

	router.GET("/", func(ctx *gin.Context) {
		ctx.JSON(200, map[string]string{"message": "carteira api"})
	})

	// kept under its historical path; the dashboard posts here
	router.POST("/api/enviar-operacoes", m.submitOperations)

	v1 := router.Group("/api/v1")
	v1.POST("/operations", m.submitOperations)
	v1.POST("/operations/import", m.importOperations)

	v1.GET("/analysis", m.getAnalysis)
	v1.GET("/analysis/performance", m.getPerformance)
	v1.GET("/analysis/drawdown", m.getDrawdown)
	v1.GET("/analysis/histogram", m.getHistogram)
	v1.GET("/analysis/allocation", m.getAllocation)

	v1.GET("/risk/rolling", m.getRollingRisk)
	v1.GET("/risk/backtest", m.getRiskBacktest)
	v1.GET("/network", m.getNetwork)
	v1.GET("/indicators", m.getIndicators)
	v1.POST("/series/expression", m.evaluateExpression)

	v1.PUT("/drafts/:id", m.saveDraft)
	v1.GET("/drafts/:id", m.getDraft)
	v1.DELETE("/drafts/:id", m.deleteDraft)

	v1.GET("/quote/:symbol", m.getQuote)

	return router
}

func (m ApiHandler) StartApi(port int) error {
	router := m.InitializeRouterEngine()
	return router.Run(fmt.Sprintf(":%d", port))
}

func (m ApiHandler) corsMiddleware() gin.HandlerFunc {
	if len(m.AllowedOrigins) == 0 {
		return cors.Default()
	}
	config := cors.DefaultConfig()
	config.AllowOrigins = m.AllowedOrigins
	config.AllowHeaders = append(config.AllowHeaders, "Authorization")
	return cors.New(config)
}

type responseBodyWriter struct {
	gin.ResponseWriter
	body *bytes.Buffer
}

func (r responseBodyWriter) Write(b []byte) (int, error) {
	r.body.Write(b)
	return r.ResponseWriter.Write(b)
}

func (m ApiHandler) logRequestMiddleware(ctx *gin.Context) {
	log := logger.FromContext(ctx.Request.Context())

	w := &responseBodyWriter{body: &bytes.Buffer{}, ResponseWriter: ctx.Writer}
	ctx.Writer = w

	body, err := ctx.GetRawData()
	if err != nil {
		log.Warnw("failed to read request body", "error", err)
	}
	ctx.Request.Body = io.NopCloser(bytes.NewReader(body))

	requestID := uuid.New()
	ctx.Set("requestID", requestID.String())

	start := time.Now().UTC()
	req, err := m.ApiRequestRepository.Add(domain.APIRequest{
		ID:          requestID,
		IPAddress:   util.StrPtr(ctx.ClientIP()),
		Method:      ctx.Request.Method,
		Route:       ctx.Request.URL.Path,
		RequestBody: util.StrPtr(string(body)),
		StartTs:     start,
	})
	if err != nil {
		log.Warnw("failed to log api request", "error", err)
	}

	ctx.Next()

	if req != nil {
		// auth runs inside this middleware; the owner is only known now
		if owner := ownerFromContext(ctx); owner != anonymousOwner {
			req.UserID = util.StrPtr(owner)
		}
		req.DurationMs = util.Int64Ptr(time.Since(start).Milliseconds())
		req.StatusCode = util.Int32Ptr(int32(ctx.Writer.Status()))
		req.ResponseBody = util.StrPtr(w.body.String())

		if err := m.ApiRequestRepository.Update(*req); err != nil {
			log.Warnw("failed to update api request log", "error", err)
		}
	}
}
