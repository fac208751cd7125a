package handlers

import "github.com/gofiber/fiber/v2"

// Routes groups the handlers mounted under the API prefix. The persisted
// analysis handlers are optional and skipped when nil.
type Routes struct {
	Session    *SessionHandler
	Report     *ReportHandler
	System     *SystemHandler
	Upload     *UploadHandler
	Evaluation *EvaluationHandler
	Result     *ResultHandler
}

// Register mounts the routes on router and returns their "METHOD path" list.
func Register(router fiber.Router, r Routes) []string {
	var endpoints []string
	add := func(method, path string, handler fiber.Handler) {
		router.Add(method, path, handler)
		endpoints = append(endpoints, method+" "+path)
	}

	add(fiber.MethodGet, "/health", r.System.HandleHealth)
	add(fiber.MethodGet, "/stats", r.System.HandleStats)

	add(fiber.MethodPost, "/upload-resume", r.Session.HandleUploadResume)
	add(fiber.MethodPost, "/submit-job", r.Session.HandleSubmitJob)
	add(fiber.MethodPost, "/match-score", r.Session.HandleMatchScore)
	add(fiber.MethodPost, "/detailed-report", r.Session.HandleDetailedReport)
	add(fiber.MethodGet, "/keywords", r.Session.HandleKeywords)
	add(fiber.MethodPost, "/coach-summary", r.Session.HandleCoachSummary)
	add(fiber.MethodPost, "/generate-report", r.Report.HandleGenerateReport)

	if r.Upload != nil {
		add(fiber.MethodPost, "/upload", r.Upload.HandleUpload)
	}
	if r.Evaluation != nil {
		add(fiber.MethodPost, "/evaluate", r.Evaluation.HandleEvaluate)
	}
	if r.Result != nil {
		add(fiber.MethodGet, "/result/:id", r.Result.HandleGetResult)
	}

	return endpoints
}
