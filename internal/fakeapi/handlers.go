package fakeapi

import (
	"encoding/json"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/fasthttp/router"
	"github.com/google/uuid"
	"github.com/valyala/fasthttp"

	"github.com/careerconnect/client/api/transport"
	"github.com/careerconnect/client/domain"
)

func (s *Server) router() *router.Router {
	r := router.New()

	r.GET("/api/health", s.health)

	r.POST("/api/auth/register", s.register)
	r.POST("/api/auth/login", s.login)
	r.GET("/api/auth/me", s.requireAuth(s.currentUser))
	r.POST("/api/auth/password-reset", s.passwordReset)

	r.GET("/api/students/profile", s.requireRole(domain.RoleStudent, s.studentProfile))
	r.PUT("/api/students/profile", s.requireRole(domain.RoleStudent, s.updateStudentProfile))
	r.POST("/api/students/assessment", s.requireRole(domain.RoleStudent, s.createAssessment))
	r.GET("/api/students/assessments", s.requireRole(domain.RoleStudent, s.listAssessments))
	r.GET("/api/students/progress", s.requireRole(domain.RoleStudent, s.listProgress))
	r.POST("/api/students/progress", s.requireRole(domain.RoleStudent, s.createProgress))
	r.PUT("/api/students/progress/{id}", s.requireRole(domain.RoleStudent, s.updateProgress))

	r.GET("/api/mentors/profile", s.requireRole(domain.RoleMentor, s.mentorProfile))
	r.PUT("/api/mentors/profile", s.requireRole(domain.RoleMentor, s.updateMentorProfile))
	r.GET("/api/mentors/search", s.requireAuth(s.searchMentors))
	r.GET("/api/mentors/{id}", s.requireAuth(s.getMentor))
	r.POST("/api/mentors/request", s.requireRole(domain.RoleStudent, s.requestMentorship))
	r.GET("/api/mentors/requests", s.requireAuth(s.listRequests))
	r.PUT("/api/mentors/requests/{id}", s.requireRole(domain.RoleMentor, s.respondToRequest))
	r.GET("/api/mentors/resources", s.requireAuth(s.listResources))
	r.POST("/api/mentors/resources", s.requireRole(domain.RoleMentor, s.shareResource))

	r.GET("/api/communications/messages", s.requireAuth(s.listMessages))
	r.POST("/api/communications/messages", s.requireRole(domain.RoleStudent, s.sendMessage))
	r.PUT("/api/communications/messages/{id}/read", s.requireRole(domain.RoleMentor, s.markMessageRead))
	r.GET("/api/communications/sessions", s.requireAuth(s.listMeetings))
	r.POST("/api/communications/sessions", s.requireRole(domain.RoleStudent, s.scheduleMeeting))
	r.PUT("/api/communications/sessions/{id}", s.requireAuth(s.updateMeeting))

	r.GET("/api/admin/users", s.requireRole(domain.RoleAdmin, s.listUsers))
	r.DELETE("/api/admin/users/{id}", s.requireRole(domain.RoleAdmin, s.deleteUser))
	r.PUT("/api/admin/mentors/verify/{id}", s.requireRole(domain.RoleAdmin, s.verifyMentor))
	r.GET("/api/admin/mentors/pending", s.requireRole(domain.RoleAdmin, s.pendingMentors))
	r.GET("/api/admin/dashboard/stats", s.requireRole(domain.RoleAdmin, s.dashboardStats))
	r.GET("/api/admin/reports/sessions", s.requireRole(domain.RoleAdmin, s.sessionReport))
	r.PUT("/api/admin/profile", s.requireRole(domain.RoleAdmin, s.updateAdminProfile))

	return r
}

func respond(ctx *fasthttp.RequestCtx, status int, payload interface{}) {
	ctx.Response.Header.SetContentType("application/json")
	ctx.SetStatusCode(status)
	body, _ := json.Marshal(payload)
	ctx.SetBody(body)
}

func respondErr(ctx *fasthttp.RequestCtx, status int, message string) {
	respond(ctx, status, map[string]string{"error": message})
}

func pathID(ctx *fasthttp.RequestCtx) int {
	raw, _ := ctx.UserValue("id").(string)
	id, _ := strconv.Atoi(raw)
	return id
}

func (s *Server) health(ctx *fasthttp.RequestCtx) {
	respond(ctx, fasthttp.StatusOK, map[string]string{
		"status":  "healthy",
		"message": "CareerConnect API is running",
	})
}

func (s *Server) register(ctx *fasthttp.RequestCtx) {
	var req transport.RegisterRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
		respondErr(ctx, fasthttp.StatusBadRequest, "invalid payload")
		return
	}
	if req.Name == "" || req.Email == "" || req.Password == "" || req.Role == "" {
		respondErr(ctx, fasthttp.StatusBadRequest, "Missing required field")
		return
	}
	if !domain.Role(req.Role).Valid() {
		respondErr(ctx, fasthttp.StatusBadRequest, "Invalid role")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.findByEmail(req.Email) != nil {
		respondErr(ctx, fasthttp.StatusBadRequest, "Email already registered")
		return
	}
	acct := s.createAccount(req.Name, req.Email, req.Password, domain.Role(req.Role), &domain.Profile{
		EducationalBackground: req.EducationalBackground,
		CareerInterests:       req.CareerInterests,
		Goals:                 req.Goals,
		ProfessionalTitle:     req.ProfessionalTitle,
		Industry:              req.Industry,
		Bio:                   req.Bio,
		Expertise:             req.Expertise,
	})
	acct.user.PhoneNumber = req.PhoneNumber

	respond(ctx, fasthttp.StatusCreated, map[string]interface{}{
		"message":      "User registered successfully",
		"access_token": s.issueToken(acct.user.ID),
		"user":         acct.user,
	})
}

func (s *Server) login(ctx *fasthttp.RequestCtx) {
	var req transport.LoginRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil || req.Email == "" || req.Password == "" {
		respondErr(ctx, fasthttp.StatusBadRequest, "Email and password required")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	acct := s.findByEmail(req.Email)
	if acct == nil || acct.password != req.Password {
		respondErr(ctx, fasthttp.StatusUnauthorized, "Invalid email or password")
		return
	}

	respond(ctx, fasthttp.StatusOK, map[string]interface{}{
		"access_token": s.issueToken(acct.user.ID),
		"user":         acct.user,
		"profile":      acct.profile,
	})
}

func (s *Server) currentUser(ctx *fasthttp.RequestCtx, acct *account) {
	respond(ctx, fasthttp.StatusOK, map[string]interface{}{
		"user":    acct.user,
		"profile": acct.profile,
	})
}

func (s *Server) passwordReset(ctx *fasthttp.RequestCtx) {
	var req transport.PasswordResetRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil || req.Email == "" {
		respondErr(ctx, fasthttp.StatusBadRequest, "Email required")
		return
	}
	respond(ctx, fasthttp.StatusOK, map[string]string{
		"message": "If the account exists, a reset email has been sent",
	})
}

func (s *Server) studentProfile(ctx *fasthttp.RequestCtx, acct *account) {
	respond(ctx, fasthttp.StatusOK, map[string]interface{}{
		"user":    acct.user,
		"profile": acct.profile,
	})
}

func (s *Server) updateStudentProfile(ctx *fasthttp.RequestCtx, acct *account) {
	var req domain.Profile
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
		respondErr(ctx, fasthttp.StatusBadRequest, "invalid payload")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	p := acct.profile
	if req.EducationalBackground != "" {
		p.EducationalBackground = req.EducationalBackground
	}
	if req.CareerInterests != "" {
		p.CareerInterests = req.CareerInterests
	}
	if req.Goals != "" {
		p.Goals = req.Goals
	}
	if req.Name != "" {
		acct.user.Name = req.Name
	}
	if req.PhoneNumber != "" {
		acct.user.PhoneNumber = req.PhoneNumber
	}

	respond(ctx, fasthttp.StatusOK, map[string]interface{}{
		"message": "Profile updated successfully",
		"user":    acct.user,
		"profile": p,
	})
}

func (s *Server) createAssessment(ctx *fasthttp.RequestCtx, acct *account) {
	var req transport.AssessmentRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
		respondErr(ctx, fasthttp.StatusBadRequest, "invalid payload")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	assessment := domain.CareerAssessment{
		ID:              len(s.assessments) + 1,
		StudentID:       acct.profile.ID,
		AssessmentID:    uuid.NewString(),
		Questionnaire:   string(req.Questionnaire),
		Results:         string(req.Results),
		Recommendations: string(req.Recommendations),
		CreatedAt:       time.Now().UTC(),
	}
	s.assessments = append(s.assessments, assessment)

	respond(ctx, fasthttp.StatusCreated, map[string]interface{}{
		"message":    "Assessment created",
		"assessment": assessment,
	})
}

func (s *Server) listAssessments(ctx *fasthttp.RequestCtx, acct *account) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := []domain.CareerAssessment{}
	for _, a := range s.assessments {
		if a.StudentID == acct.profile.ID {
			out = append(out, a)
		}
	}
	respond(ctx, fasthttp.StatusOK, map[string]interface{}{"assessments": out})
}

func (s *Server) listProgress(ctx *fasthttp.RequestCtx, acct *account) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := []domain.ProgressTracker{}
	for _, t := range s.trackers {
		if t.StudentID == acct.profile.ID {
			out = append(out, *t)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	respond(ctx, fasthttp.StatusOK, map[string]interface{}{"trackers": out})
}

func (s *Server) createProgress(ctx *fasthttp.RequestCtx, acct *account) {
	var req transport.ProgressRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
		respondErr(ctx, fasthttp.StatusBadRequest, "invalid payload")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	tracker := &domain.ProgressTracker{
		ID:         len(s.trackers) + 1,
		StudentID:  acct.profile.ID,
		TrackerID:  uuid.NewString(),
		Goals:      string(req.Goals),
		Milestones: string(req.Milestones),
		CreatedAt:  time.Now().UTC(),
		UpdatedAt:  time.Now().UTC(),
	}
	s.trackers[tracker.ID] = tracker

	respond(ctx, fasthttp.StatusCreated, map[string]interface{}{
		"message": "Progress tracker created",
		"tracker": tracker,
	})
}

func (s *Server) updateProgress(ctx *fasthttp.RequestCtx, acct *account) {
	var req transport.ProgressUpdateRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
		respondErr(ctx, fasthttp.StatusBadRequest, "invalid payload")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	tracker, ok := s.trackers[pathID(ctx)]
	if !ok {
		respondErr(ctx, fasthttp.StatusNotFound, "Tracker not found")
		return
	}
	if tracker.StudentID != acct.profile.ID {
		respondErr(ctx, fasthttp.StatusForbidden, "Unauthorized")
		return
	}
	if len(req.Goals) > 0 {
		tracker.Goals = string(req.Goals)
	}
	if len(req.Milestones) > 0 {
		tracker.Milestones = string(req.Milestones)
	}
	if req.MentorFeedback != "" {
		tracker.MentorFeedback = req.MentorFeedback
	}
	tracker.UpdatedAt = time.Now().UTC()

	respond(ctx, fasthttp.StatusOK, map[string]interface{}{
		"message": "Progress updated",
		"tracker": tracker,
	})
}

func (s *Server) mentorProfile(ctx *fasthttp.RequestCtx, acct *account) {
	respond(ctx, fasthttp.StatusOK, map[string]interface{}{
		"user":    acct.user,
		"profile": acct.profile,
	})
}

func (s *Server) updateMentorProfile(ctx *fasthttp.RequestCtx, acct *account) {
	var req domain.Profile
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
		respondErr(ctx, fasthttp.StatusBadRequest, "invalid payload")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	p := acct.profile
	if req.ProfessionalTitle != "" {
		p.ProfessionalTitle = req.ProfessionalTitle
	}
	if req.Industry != "" {
		p.Industry = req.Industry
	}
	if req.Bio != "" {
		p.Bio = req.Bio
	}
	if req.Expertise != "" {
		p.Expertise = req.Expertise
	}
	if req.Name != "" {
		acct.user.Name = req.Name
	}
	if req.PhoneNumber != "" {
		acct.user.PhoneNumber = req.PhoneNumber
	}

	respond(ctx, fasthttp.StatusOK, map[string]interface{}{
		"message": "Profile updated successfully",
		"user":    acct.user,
		"profile": p,
	})
}

func (s *Server) searchMentors(ctx *fasthttp.RequestCtx, _ *account) {
	industry := string(ctx.QueryArgs().Peek("industry"))
	expertise := string(ctx.QueryArgs().Peek("expertise"))

	s.mu.Lock()
	defer s.mu.Unlock()

	out := []domain.MentorListing{}
	for _, acct := range s.accounts {
		p := acct.profile
		if acct.user.Role != domain.RoleMentor || !p.Verified() {
			continue
		}
		if industry != "" && !strings.Contains(strings.ToLower(p.Industry), strings.ToLower(industry)) {
			continue
		}
		if expertise != "" && !strings.Contains(strings.ToLower(p.Expertise), strings.ToLower(expertise)) {
			continue
		}
		out = append(out, domain.MentorListing{Profile: *p, User: acct.user})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	respond(ctx, fasthttp.StatusOK, map[string]interface{}{"mentors": out})
}

func (s *Server) getMentor(ctx *fasthttp.RequestCtx, _ *account) {
	s.mu.Lock()
	defer s.mu.Unlock()

	acct, ok := s.accounts[pathID(ctx)]
	if !ok || acct.user.Role != domain.RoleMentor {
		respondErr(ctx, fasthttp.StatusNotFound, "Mentor not found")
		return
	}
	respond(ctx, fasthttp.StatusOK, map[string]interface{}{
		"mentor": domain.MentorListing{Profile: *acct.profile, User: acct.user},
	})
}

func (s *Server) requestMentorship(ctx *fasthttp.RequestCtx, acct *account) {
	var req transport.MentorshipRequestInput
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil || req.MentorID == 0 {
		respondErr(ctx, fasthttp.StatusBadRequest, "Mentor ID required")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	mentor, ok := s.accounts[req.MentorID]
	if !ok || mentor.user.Role != domain.RoleMentor {
		respondErr(ctx, fasthttp.StatusNotFound, "Mentor not found")
		return
	}
	if !mentor.profile.Verified() {
		respondErr(ctx, fasthttp.StatusBadRequest, "Mentor is not verified")
		return
	}
	for _, r := range s.requests {
		if r.StudentID == acct.profile.ID && r.MentorID == req.MentorID && r.Status == domain.RequestPending {
			respondErr(ctx, fasthttp.StatusBadRequest, "Request already pending")
			return
		}
	}

	mr := &domain.MentorshipRequest{
		ID:        len(s.requests) + 1,
		StudentID: acct.profile.ID,
		MentorID:  req.MentorID,
		Status:    domain.RequestPending,
		Message:   req.Message,
		CreatedAt: time.Now().UTC(),
		UpdatedAt: time.Now().UTC(),
	}
	s.requests[mr.ID] = mr

	respond(ctx, fasthttp.StatusCreated, map[string]interface{}{
		"message": "Mentorship request sent",
		"request": mr,
	})
}

func (s *Server) listRequests(ctx *fasthttp.RequestCtx, acct *account) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := []domain.MentorshipRequest{}
	for _, r := range s.requests {
		switch acct.user.Role {
		case domain.RoleStudent:
			if r.StudentID == acct.profile.ID {
				out = append(out, *r)
			}
		case domain.RoleMentor:
			if r.MentorID == acct.profile.ID {
				out = append(out, *r)
			}
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	respond(ctx, fasthttp.StatusOK, map[string]interface{}{"requests": out})
}

func (s *Server) respondToRequest(ctx *fasthttp.RequestCtx, acct *account) {
	var req transport.StatusUpdateRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
		respondErr(ctx, fasthttp.StatusBadRequest, "invalid payload")
		return
	}
	status := domain.RequestStatus(req.Status)
	if status != domain.RequestApproved && status != domain.RequestRejected {
		respondErr(ctx, fasthttp.StatusBadRequest, "Invalid status")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	mr, ok := s.requests[pathID(ctx)]
	if !ok {
		respondErr(ctx, fasthttp.StatusNotFound, "Request not found")
		return
	}
	if mr.MentorID != acct.profile.ID {
		respondErr(ctx, fasthttp.StatusForbidden, "Unauthorized")
		return
	}
	mr.Status = status
	mr.UpdatedAt = time.Now().UTC()

	respond(ctx, fasthttp.StatusOK, map[string]interface{}{
		"message": "Request updated",
		"request": mr,
	})
}

func (s *Server) listResources(ctx *fasthttp.RequestCtx, _ *account) {
	s.mu.Lock()
	defer s.mu.Unlock()
	respond(ctx, fasthttp.StatusOK, map[string]interface{}{"resources": s.resources})
}

func (s *Server) shareResource(ctx *fasthttp.RequestCtx, acct *account) {
	var req transport.ResourceRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil || req.Title == "" {
		respondErr(ctx, fasthttp.StatusBadRequest, "Title required")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	resource := domain.Resource{
		ID:          len(s.resources) + 1,
		ResourceID:  uuid.NewString(),
		MentorID:    acct.profile.ID,
		Title:       req.Title,
		FileType:    req.FileType,
		Description: req.Description,
		FileURL:     req.FileURL,
		UploadDate:  time.Now().UTC(),
	}
	s.resources = append(s.resources, resource)

	respond(ctx, fasthttp.StatusCreated, map[string]interface{}{
		"message":  "Resource shared",
		"resource": resource,
	})
}

func (s *Server) listMessages(ctx *fasthttp.RequestCtx, acct *account) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := []domain.Message{}
	for _, msg := range s.messages {
		switch acct.user.Role {
		case domain.RoleStudent:
			if msg.SenderID == acct.profile.ID {
				out = append(out, *msg)
			}
		case domain.RoleMentor:
			if msg.ReceiverID == acct.profile.ID {
				out = append(out, *msg)
			}
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	respond(ctx, fasthttp.StatusOK, map[string]interface{}{"messages": out})
}

func (s *Server) sendMessage(ctx *fasthttp.RequestCtx, acct *account) {
	var req transport.MessageRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil || req.ReceiverID == 0 || req.Content == "" {
		respondErr(ctx, fasthttp.StatusBadRequest, "Receiver ID and content required")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	mentor, ok := s.accounts[req.ReceiverID]
	if !ok || mentor.user.Role != domain.RoleMentor {
		respondErr(ctx, fasthttp.StatusNotFound, "Mentor not found")
		return
	}

	msg := &domain.Message{
		ID:           len(s.messages) + 1,
		MessageID:    uuid.NewString(),
		SenderID:     acct.profile.ID,
		ReceiverID:   req.ReceiverID,
		Content:      req.Content,
		Timestamp:    time.Now().UTC(),
		SenderName:   acct.user.Name,
		ReceiverName: mentor.user.Name,
	}
	s.messages[msg.ID] = msg

	respond(ctx, fasthttp.StatusCreated, map[string]interface{}{
		"message": "Message sent",
		"data":    msg,
	})
}

func (s *Server) markMessageRead(ctx *fasthttp.RequestCtx, acct *account) {
	s.mu.Lock()
	defer s.mu.Unlock()

	msg, ok := s.messages[pathID(ctx)]
	if !ok {
		respondErr(ctx, fasthttp.StatusNotFound, "Message not found")
		return
	}
	if msg.ReceiverID != acct.profile.ID {
		respondErr(ctx, fasthttp.StatusForbidden, "Unauthorized")
		return
	}
	msg.Read = true

	respond(ctx, fasthttp.StatusOK, map[string]string{"message": "Message marked as read"})
}

func (s *Server) listMeetings(ctx *fasthttp.RequestCtx, acct *account) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := []domain.Meeting{}
	for _, m := range s.meetings {
		switch acct.user.Role {
		case domain.RoleStudent:
			if m.StudentID == acct.profile.ID {
				out = append(out, *m)
			}
		case domain.RoleMentor:
			if m.MentorID == acct.profile.ID {
				out = append(out, *m)
			}
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	respond(ctx, fasthttp.StatusOK, map[string]interface{}{"sessions": out})
}

func (s *Server) scheduleMeeting(ctx *fasthttp.RequestCtx, acct *account) {
	var req transport.MeetingRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil || req.MentorID == 0 || req.DateTime == "" {
		respondErr(ctx, fasthttp.StatusBadRequest, "Mentor ID and date_time required")
		return
	}
	when, err := time.Parse(time.RFC3339, req.DateTime)
	if err != nil {
		respondErr(ctx, fasthttp.StatusBadRequest, "Invalid date_time format")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	mentor, ok := s.accounts[req.MentorID]
	if !ok || mentor.user.Role != domain.RoleMentor {
		respondErr(ctx, fasthttp.StatusNotFound, "Mentor not found")
		return
	}

	meeting := &domain.Meeting{
		ID:          len(s.meetings) + 1,
		SessionID:   uuid.NewString(),
		StudentID:   acct.profile.ID,
		MentorID:    req.MentorID,
		DateTime:    when,
		Status:      domain.MeetingPending,
		Notes:       req.Notes,
		CreatedAt:   time.Now().UTC(),
		StudentName: acct.user.Name,
		MentorName:  mentor.user.Name,
	}
	s.meetings[meeting.ID] = meeting

	respond(ctx, fasthttp.StatusCreated, map[string]interface{}{
		"message": "Session requested",
		"session": meeting,
	})
}

func (s *Server) updateMeeting(ctx *fasthttp.RequestCtx, acct *account) {
	var req transport.MeetingUpdateRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
		respondErr(ctx, fasthttp.StatusBadRequest, "invalid payload")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	meeting, ok := s.meetings[pathID(ctx)]
	if !ok {
		respondErr(ctx, fasthttp.StatusNotFound, "Session not found")
		return
	}

	switch acct.user.Role {
	case domain.RoleMentor:
		if meeting.MentorID != acct.profile.ID {
			respondErr(ctx, fasthttp.StatusForbidden, "Unauthorized")
			return
		}
		switch domain.MeetingStatus(req.Status) {
		case domain.MeetingScheduled, domain.MeetingCompleted, domain.MeetingCancelled:
			meeting.Status = domain.MeetingStatus(req.Status)
		}
		if req.Notes != "" {
			meeting.Notes = req.Notes
		}
	case domain.RoleStudent:
		if meeting.StudentID != acct.profile.ID {
			respondErr(ctx, fasthttp.StatusForbidden, "Unauthorized")
			return
		}
		if domain.MeetingStatus(req.Status) == domain.MeetingCancelled {
			meeting.Status = domain.MeetingCancelled
		}
	default:
		respondErr(ctx, fasthttp.StatusForbidden, "Unauthorized")
		return
	}

	respond(ctx, fasthttp.StatusOK, map[string]interface{}{
		"message": "Session updated",
		"session": meeting,
	})
}

func (s *Server) listUsers(ctx *fasthttp.RequestCtx, _ *account) {
	role := string(ctx.QueryArgs().Peek("role"))

	s.mu.Lock()
	defer s.mu.Unlock()

	out := []domain.User{}
	for _, acct := range s.accounts {
		if role != "" && string(acct.user.Role) != role {
			continue
		}
		out = append(out, acct.user)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	respond(ctx, fasthttp.StatusOK, map[string]interface{}{"users": out})
}

func (s *Server) deleteUser(ctx *fasthttp.RequestCtx, _ *account) {
	s.mu.Lock()
	defer s.mu.Unlock()

	acct, ok := s.accounts[pathID(ctx)]
	if !ok {
		respondErr(ctx, fasthttp.StatusNotFound, "User not found")
		return
	}
	if acct.user.Role == domain.RoleAdmin {
		respondErr(ctx, fasthttp.StatusBadRequest, "Cannot delete admin users")
		return
	}
	delete(s.accounts, acct.user.ID)

	respond(ctx, fasthttp.StatusOK, map[string]string{"message": "User deleted successfully"})
}

func (s *Server) verifyMentor(ctx *fasthttp.RequestCtx, _ *account) {
	var req transport.StatusUpdateRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
		respondErr(ctx, fasthttp.StatusBadRequest, "invalid payload")
		return
	}
	status := domain.VerificationStatus(req.Status)
	if status != domain.VerificationVerified && status != domain.VerificationRejected {
		respondErr(ctx, fasthttp.StatusBadRequest, "Invalid status")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	acct, ok := s.accounts[pathID(ctx)]
	if !ok || acct.user.Role != domain.RoleMentor {
		respondErr(ctx, fasthttp.StatusNotFound, "Mentor not found")
		return
	}
	acct.profile.VerificationStatus = status

	respond(ctx, fasthttp.StatusOK, map[string]interface{}{
		"message": "Mentor verification updated",
		"mentor":  acct.profile,
	})
}

func (s *Server) pendingMentors(ctx *fasthttp.RequestCtx, _ *account) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := []domain.MentorListing{}
	for _, acct := range s.accounts {
		if acct.user.Role == domain.RoleMentor && acct.profile.VerificationStatus == domain.VerificationPending {
			out = append(out, domain.MentorListing{Profile: *acct.profile, User: acct.user})
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	respond(ctx, fasthttp.StatusOK, map[string]interface{}{"mentors": out})
}

func (s *Server) dashboardStats(ctx *fasthttp.RequestCtx, _ *account) {
	s.mu.Lock()
	defer s.mu.Unlock()

	stats := domain.DashboardStats{
		TotalUsers:    len(s.accounts),
		TotalSessions: len(s.meetings),
		TotalMessages: len(s.messages),
	}
	for _, acct := range s.accounts {
		switch acct.user.Role {
		case domain.RoleStudent:
			stats.TotalStudents++
		case domain.RoleMentor:
			stats.TotalMentors++
			switch acct.profile.VerificationStatus {
			case domain.VerificationVerified:
				stats.VerifiedMentors++
			case domain.VerificationPending:
				stats.PendingMentors++
			}
		}
	}
	for _, m := range s.meetings {
		if m.Status == domain.MeetingCompleted {
			stats.CompletedSessions++
		}
	}
	for _, r := range s.requests {
		if r.Status == domain.RequestPending {
			stats.PendingRequests++
		}
	}

	respond(ctx, fasthttp.StatusOK, map[string]interface{}{"stats": stats})
}

func (s *Server) sessionReport(ctx *fasthttp.RequestCtx, _ *account) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := []domain.Meeting{}
	for _, m := range s.meetings {
		out = append(out, *m)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].DateTime.After(out[j].DateTime) })
	if len(out) > 100 {
		out = out[:100]
	}
	respond(ctx, fasthttp.StatusOK, map[string]interface{}{"sessions": out})
}

func (s *Server) updateAdminProfile(ctx *fasthttp.RequestCtx, acct *account) {
	var req struct {
		Name        string `json:"name"`
		PhoneNumber string `json:"phone_number"`
		Email       string `json:"email"`
	}
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
		respondErr(ctx, fasthttp.StatusBadRequest, "invalid payload")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if req.Email != "" && req.Email != acct.user.Email {
		if other := s.findByEmail(req.Email); other != nil {
			respondErr(ctx, fasthttp.StatusBadRequest, "Email already in use")
			return
		}
		acct.user.Email = req.Email
	}
	if req.Name != "" {
		acct.user.Name = req.Name
	}
	if req.PhoneNumber != "" {
		acct.user.PhoneNumber = req.PhoneNumber
	}

	respond(ctx, fasthttp.StatusOK, map[string]interface{}{
		"message": "Profile updated",
		"user":    acct.user,
	})
}
