package api

import (
	"bytes"
	"encoding/base64"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/dutchcoders/go-clamd"
	"github.com/gin-gonic/gin"

	"vectorhire/internal/api/middleware"
	"vectorhire/internal/applicant"
	"vectorhire/internal/archive"
	"vectorhire/internal/auth"
	"vectorhire/internal/jobs"
	"vectorhire/internal/metrics"
	"vectorhire/internal/notify"
	"vectorhire/internal/session"
	"vectorhire/internal/store"
)

const pdfMIMEType = "application/pdf"

// Defaults used when a submission arrives without an authenticated session.
const (
	demoApplicantEmail = "demo@example.com"
	demoApplicantName  = "Demo Applicant"
)

// Evaluator scores a submission. A verdict always comes back; the stub
// guarantees fallback behavior internally.
type Evaluator interface {
	Evaluate(jobDescription, fileName string) applicant.Verdict
}

// EvaluateHandler 负责处理简历提交与评估。
type EvaluateHandler struct {
	Store       *store.RecordStore
	Evaluator   Evaluator
	Archive     *archive.Client
	Hub         *notify.Hub
	AuthService *auth.AuthService
	Logger      *slog.Logger
	MaxBytes    int64
	ClamdAddr   string
}

// NewEvaluateHandler 构造提交处理器。archiveClient 可以为 nil。
func NewEvaluateHandler(recordStore *store.RecordStore, evaluator Evaluator, archiveClient *archive.Client, hub *notify.Hub, authService *auth.AuthService, logger *slog.Logger, maxBytes int64, clamdAddr string) *EvaluateHandler {
	return &EvaluateHandler{
		Store:       recordStore,
		Evaluator:   evaluator,
		Archive:     archiveClient,
		Hub:         hub,
		AuthService: authService,
		Logger:      logger,
		MaxBytes:    maxBytes,
		ClamdAddr:   clamdAddr,
	}
}

type evaluateResponse struct {
	OK            bool                   `json:"ok"`
	Score         int                    `json:"score"`
	Passed        bool                   `json:"passed"`
	Reasons       []string               `json:"reasons"`
	Missing       []string               `json:"missing"`
	ApplicationID string                 `json:"applicationId,omitempty"`
	Application   *applicant.Application `json:"application,omitempty"`
	Error         string                 `json:"error,omitempty"`
}

// Evaluate 校验上传的 PDF，生成评估结果并持久化投递记录。
// 校验失败返回 4xx；校验通过后的内部故障一律降级为兜底评估，不再报错。
func (h *EvaluateHandler) Evaluate(c *gin.Context) {
	logger := h.loggerFromContext(c)

	file, err := c.FormFile("file")
	if err != nil {
		BadRequest(c, "missing required fields")
		return
	}
	jobDescription := c.PostForm("jobDescription")
	jobID := c.PostForm("jobId")
	if jobDescription == "" || jobID == "" {
		BadRequest(c, "missing required fields")
		return
	}

	if file.Header.Get("Content-Type") != pdfMIMEType {
		BadRequest(c, "only PDF files are allowed")
		return
	}
	if file.Size > h.MaxBytes {
		BadRequest(c, "file size too large")
		return
	}

	fileReader, err := file.Open()
	if err != nil {
		BadRequest(c, "unreadable file")
		return
	}
	content, err := io.ReadAll(fileReader)
	fileReader.Close()
	if err != nil {
		BadRequest(c, "unreadable file")
		return
	}

	if infected, scanErr := h.scan(content); scanErr != nil {
		// 扫描器故障不阻断提交流程。
		logger.Error("clamd scan failed", slog.Any("error", scanErr))
	} else if infected {
		BadRequest(c, "malicious file detected")
		return
	}

	verdict := h.Evaluator.Evaluate(jobDescription, file.Filename)
	metrics.ObserveVerdict(verdict.Passed)

	email, name := demoApplicantEmail, demoApplicantName
	if sess, ok := h.sessionFromRequest(c); ok {
		email, name = sess.Email, sess.Name
	}

	app := applicant.Application{
		ID:             applicant.NewID(),
		JobID:          jobID,
		ApplicantEmail: email,
		ApplicantName:  name,
		JobTitle:       jobs.Title(jobID),
		FileName:       file.Filename,
		PDFDataURL:     "data:" + pdfMIMEType + ";base64," + base64.StdEncoding.EncodeToString(content),
		CreatedAt:      time.Now().UnixMilli(),
		Status:         applicant.StatusScreened,
		AI:             verdict,
	}

	resp := evaluateResponse{
		OK:      true,
		Score:   verdict.Score,
		Passed:  verdict.Passed,
		Reasons: verdict.Reasons,
		Missing: verdict.Missing,
	}

	if err := h.Store.Append(c.Request.Context(), app); err != nil {
		// 评估结果依旧返回；调用方没有备用路径。
		logger.Error("persist application failed", slog.Any("error", err))
		resp.Error = "evaluation stored partially, using fallback flow"
		c.JSON(http.StatusOK, resp)
		return
	}

	resp.ApplicationID = app.ID
	resp.Application = &app

	if h.Archive != nil {
		if err := h.Archive.Store(c.Request.Context(), app.ID, bytes.NewReader(content), int64(len(content))); err != nil {
			logger.Error("archive upload failed", slog.String("application_id", app.ID), slog.Any("error", err))
		}
	}

	if h.Hub != nil {
		h.Hub.Publish(c.Request.Context(), notify.EventApplicationsChanged)
	}

	logger.Info("application evaluated",
		slog.String("application_id", app.ID),
		slog.String("job_id", jobID),
		slog.Int("score", verdict.Score),
		slog.Bool("passed", verdict.Passed),
	)

	c.JSON(http.StatusOK, resp)
}

// sessionFromRequest restores the submitting identity from an optional
// bearer token. Anonymous submissions fall back to the demo identity.
func (h *EvaluateHandler) sessionFromRequest(c *gin.Context) (session.Session, bool) {
	if h.AuthService == nil {
		return session.Session{}, false
	}
	header := c.GetHeader("Authorization")
	parts := strings.Fields(header)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return session.Session{}, false
	}
	claims, err := h.AuthService.ValidateToken(parts[1])
	if err != nil {
		return session.Session{}, false
	}
	return claims.Session(), true
}

func (h *EvaluateHandler) loggerFromContext(c *gin.Context) *slog.Logger {
	if logger := middleware.LoggerFromContext(c); logger != nil {
		return logger
	}
	if h.Logger != nil {
		return h.Logger
	}
	return slog.Default()
}

// scan streams the upload through clamd when an address is configured.
func (h *EvaluateHandler) scan(content []byte) (infected bool, err error) {
	if strings.TrimSpace(h.ClamdAddr) == "" {
		return false, nil
	}

	clamdClient := clamd.NewClamd(h.ClamdAddr)
	abortChan := make(chan bool)
	defer close(abortChan)

	scanChan, err := clamdClient.ScanStream(bytes.NewReader(content), abortChan)
	if err != nil {
		return false, err
	}
	for result := range scanChan {
		if result.Status != clamd.RES_OK {
			return true, nil
		}
	}
	return false, nil
}
