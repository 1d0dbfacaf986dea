package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"strconv"

	"go.uber.org/zap"

	"github.com/careerconnect/client/api"
	"github.com/careerconnect/client/api/transport"
	"github.com/careerconnect/client/domain"
	"github.com/careerconnect/client/internal/config"
	"github.com/careerconnect/client/internal/infrastructure/monitor"
	"github.com/careerconnect/client/usecase/guard"
	"github.com/careerconnect/client/usecase/session"
)

type app struct {
	cfg    *config.Config
	logger *zap.Logger
	api    api.Groups
	store  *session.Store
	mon    *monitor.Monitor
}

const usage = `Usage: careerconnect <command> [arguments]

Account:
  register       create an account (student, mentor or admin approval flow)
  login          sign in and persist the session
  logout         sign out and clear the persisted session
  whoami         show the signed-in user
  password-reset request a password reset email
  status         backend and keystore connectivity

Students:
  profile        show or update your profile
  assessments    list or submit career assessments
  progress       manage progress trackers

Mentors & discovery:
  mentors        search mentors, manage requests, share resources

Communication:
  messages       list, send or acknowledge messages
  meetings       list, schedule or update mentorship sessions

Administration:
  admin          user management, mentor verification, reports
`

func (a *app) run(ctx context.Context, args []string) error {
	if len(args) == 0 {
		fmt.Fprint(os.Stderr, usage)
		return nil
	}

	switch args[0] {
	case "register":
		return a.cmdRegister(ctx, args[1:])
	case "login":
		return a.cmdLogin(ctx, args[1:])
	case "logout":
		return a.cmdLogout(args[1:])
	case "whoami":
		return a.cmdWhoami(args[1:])
	case "password-reset":
		return a.cmdPasswordReset(ctx, args[1:])
	case "status":
		return a.cmdStatus(args[1:])
	case "profile":
		return a.cmdProfile(ctx, args[1:])
	case "assessments":
		return a.cmdAssessments(ctx, args[1:])
	case "progress":
		return a.cmdProgress(ctx, args[1:])
	case "mentors":
		return a.cmdMentors(ctx, args[1:])
	case "messages":
		return a.cmdMessages(ctx, args[1:])
	case "meetings":
		return a.cmdMeetings(ctx, args[1:])
	case "admin":
		return a.cmdAdmin(ctx, args[1:])
	case "help", "-h", "--help":
		fmt.Fprint(os.Stderr, usage)
		return nil
	default:
		return fmt.Errorf("unknown command %q (run 'careerconnect help')", args[0])
	}
}

// authorize maps a route decision onto the command line: render means
// proceed, a redirect to the sign-in page means the caller has to log in
// first, any other redirect means the command is off-limits here.
func (a *app) authorize(req guard.Requirement) error {
	decision := guard.Evaluate(a.store.Snapshot(), req)
	switch decision.Action {
	case guard.ActionRender:
		return nil
	case guard.ActionRedirect:
		if decision.Target == guard.TargetLogin {
			return domain.NewError(domain.ErrCodeUnauthorized, "not signed in; run 'careerconnect login' first")
		}
		if req.Public {
			return domain.NewError(domain.ErrCodeConflict, "already signed in; run 'careerconnect logout' first")
		}
		return domain.NewError(domain.ErrCodeForbidden, "this command is not available for your role")
	default:
		return domain.NewError(domain.ErrCodeInternal, "session state not ready")
	}
}

func printJSON(v interface{}) error {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(out))
	return nil
}

func parseID(args []string, what string) (int, []string, error) {
	if len(args) == 0 {
		return 0, nil, fmt.Errorf("%s id required", what)
	}
	id, err := strconv.Atoi(args[0])
	if err != nil {
		return 0, nil, fmt.Errorf("invalid %s id %q", what, args[0])
	}
	return id, args[1:], nil
}

func rawOrEmpty(s string) json.RawMessage {
	if s == "" {
		return nil
	}
	if json.Valid([]byte(s)) {
		return json.RawMessage(s)
	}
	quoted, _ := json.Marshal(s)
	return quoted
}

func (a *app) cmdRegister(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("register", flag.ContinueOnError)
	var req transport.RegisterRequest
	fs.StringVar(&req.Name, "name", "", "full name")
	fs.StringVar(&req.Email, "email", "", "email address")
	fs.StringVar(&req.Password, "password", "", "password")
	fs.StringVar(&req.PhoneNumber, "phone", "", "phone number")
	fs.StringVar(&req.Role, "role", "student", "account role (student or mentor)")
	fs.StringVar(&req.EducationalBackground, "education", "", "educational background (students)")
	fs.StringVar(&req.CareerInterests, "interests", "", "career interests (students)")
	fs.StringVar(&req.Goals, "goals", "", "goals (students)")
	fs.StringVar(&req.ProfessionalTitle, "title", "", "professional title (mentors)")
	fs.StringVar(&req.Industry, "industry", "", "industry (mentors)")
	fs.StringVar(&req.Bio, "bio", "", "short bio (mentors)")
	fs.StringVar(&req.Expertise, "expertise", "", "areas of expertise (mentors)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if err := a.authorize(guard.Requirement{Public: true}); err != nil {
		return err
	}
	if req.Name == "" || req.Email == "" || req.Password == "" {
		return domain.NewError(domain.ErrCodeInvalid, "name, email and password are required")
	}
	if len(req.Password) < 6 {
		return domain.NewError(domain.ErrCodeInvalid, "password must be at least 6 characters")
	}

	user, err := a.store.Register(ctx, req)
	if err != nil {
		return err
	}
	fmt.Printf("Registered and signed in as %s (%s)\n", user.Name, user.Role)
	if user.Role == domain.RoleMentor {
		fmt.Println("Your mentor profile is pending verification by an administrator.")
	}
	return nil
}

func (a *app) cmdLogin(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("login", flag.ContinueOnError)
	email := fs.String("email", "", "email address")
	password := fs.String("password", "", "password")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if err := a.authorize(guard.Requirement{Public: true}); err != nil {
		return err
	}
	if *email == "" || *password == "" {
		return domain.NewError(domain.ErrCodeInvalid, "email and password are required")
	}

	user, err := a.store.Login(ctx, *email, *password)
	if err != nil {
		return err
	}
	fmt.Printf("Signed in as %s (%s)\n", user.Name, user.Role)
	return nil
}

func (a *app) cmdLogout(args []string) error {
	if err := a.authorize(guard.Requirement{}); err != nil {
		return err
	}
	a.store.Logout()
	fmt.Println("Signed out.")
	return nil
}

func (a *app) cmdWhoami(args []string) error {
	if err := a.authorize(guard.Requirement{}); err != nil {
		return err
	}
	snap := a.store.Snapshot()
	if snap.Profile != nil {
		return printJSON(map[string]interface{}{"user": snap.User, "profile": snap.Profile})
	}
	return printJSON(map[string]interface{}{"user": snap.User})
}

func (a *app) cmdPasswordReset(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("password-reset", flag.ContinueOnError)
	email := fs.String("email", "", "email address")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if err := a.authorize(guard.Requirement{Public: true}); err != nil {
		return err
	}
	if *email == "" {
		return domain.NewError(domain.ErrCodeInvalid, "email is required")
	}
	if err := a.api.Auth.PasswordReset(ctx, *email); err != nil {
		return err
	}
	fmt.Println("If the account exists, a reset email has been sent.")
	return nil
}

func (a *app) cmdStatus(args []string) error {
	status := a.mon.Refresh()
	snap := a.store.Snapshot()

	fmt.Printf("Backend:   %s (%s)\n", onlineWord(status.Backend), a.cfg.API.BaseURL)
	fmt.Printf("Keystore:  %s (%s)\n", onlineWord(status.Keystore), a.cfg.Keystore.Path)
	if snap.Authenticated() {
		fmt.Printf("Session:   signed in as %s (%s)\n", snap.User.Name, snap.Role())
	} else {
		fmt.Println("Session:   signed out")
	}
	return nil
}

func onlineWord(ok bool) string {
	if ok {
		return "ok"
	}
	return "unreachable"
}

func (a *app) cmdProfile(ctx context.Context, args []string) error {
	if err := a.authorize(guard.Requirement{}); err != nil {
		return err
	}
	snap := a.store.Snapshot()

	sub := "show"
	if len(args) > 0 {
		sub = args[0]
		args = args[1:]
	}

	switch sub {
	case "show":
		var user *domain.User
		var profile *domain.Profile
		var err error
		switch {
		case snap.IsStudent():
			user, profile, err = a.api.Student.Profile(ctx)
		case snap.IsMentor():
			user, profile, err = a.api.Mentor.Profile(ctx)
		default:
			return printJSON(map[string]interface{}{"user": snap.User})
		}
		if err != nil {
			return err
		}
		a.store.UpdateUser(user, profile)
		return printJSON(map[string]interface{}{"user": user, "profile": profile})
	case "update":
		return a.cmdProfileUpdate(ctx, snap, args)
	default:
		return fmt.Errorf("unknown profile subcommand %q", sub)
	}
}

func (a *app) cmdProfileUpdate(ctx context.Context, snap domain.Snapshot, args []string) error {
	fs := flag.NewFlagSet("profile update", flag.ContinueOnError)
	var p domain.Profile
	fs.StringVar(&p.Name, "name", "", "full name")
	fs.StringVar(&p.PhoneNumber, "phone", "", "phone number")
	fs.StringVar(&p.EducationalBackground, "education", "", "educational background (students)")
	fs.StringVar(&p.CareerInterests, "interests", "", "career interests (students)")
	fs.StringVar(&p.Goals, "goals", "", "goals (students)")
	fs.StringVar(&p.ProfessionalTitle, "title", "", "professional title (mentors)")
	fs.StringVar(&p.Industry, "industry", "", "industry (mentors)")
	fs.StringVar(&p.Bio, "bio", "", "short bio (mentors)")
	fs.StringVar(&p.Expertise, "expertise", "", "areas of expertise (mentors)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	var user *domain.User
	var profile *domain.Profile
	var err error
	switch {
	case snap.IsStudent():
		user, profile, err = a.api.Student.UpdateProfile(ctx, p)
	case snap.IsMentor():
		user, profile, err = a.api.Mentor.UpdateProfile(ctx, p)
	default:
		return domain.NewError(domain.ErrCodeForbidden, "admins update their profile via 'careerconnect admin profile'")
	}
	if err != nil {
		return err
	}
	a.store.UpdateUser(user, profile)
	fmt.Println("Profile updated.")
	return printJSON(map[string]interface{}{"user": user, "profile": profile})
}

func (a *app) cmdAssessments(ctx context.Context, args []string) error {
	if err := a.authorize(guard.Requirement{Role: domain.RoleStudent}); err != nil {
		return err
	}

	sub := "list"
	if len(args) > 0 {
		sub = args[0]
		args = args[1:]
	}

	switch sub {
	case "list":
		assessments, err := a.api.Student.Assessments(ctx)
		if err != nil {
			return err
		}
		return printJSON(assessments)
	case "create":
		fs := flag.NewFlagSet("assessments create", flag.ContinueOnError)
		questionnaire := fs.String("questionnaire", "", "questionnaire payload (JSON or text)")
		results := fs.String("results", "", "results payload (JSON or text)")
		recommendations := fs.String("recommendations", "", "recommendations payload (JSON or text)")
		if err := fs.Parse(args); err != nil {
			return err
		}
		assessment, err := a.api.Student.CreateAssessment(ctx, transport.AssessmentRequest{
			Questionnaire:   rawOrEmpty(*questionnaire),
			Results:         rawOrEmpty(*results),
			Recommendations: rawOrEmpty(*recommendations),
		})
		if err != nil {
			return err
		}
		fmt.Println("Assessment submitted.")
		return printJSON(assessment)
	default:
		return fmt.Errorf("unknown assessments subcommand %q", sub)
	}
}

func (a *app) cmdProgress(ctx context.Context, args []string) error {
	if err := a.authorize(guard.Requirement{Role: domain.RoleStudent}); err != nil {
		return err
	}

	sub := "list"
	if len(args) > 0 {
		sub = args[0]
		args = args[1:]
	}

	switch sub {
	case "list":
		trackers, err := a.api.Student.Progress(ctx)
		if err != nil {
			return err
		}
		return printJSON(trackers)
	case "create":
		fs := flag.NewFlagSet("progress create", flag.ContinueOnError)
		goals := fs.String("goals", "", "goals payload (JSON or text)")
		milestones := fs.String("milestones", "", "milestones payload (JSON or text)")
		if err := fs.Parse(args); err != nil {
			return err
		}
		tracker, err := a.api.Student.CreateProgress(ctx, transport.ProgressRequest{
			Goals:      rawOrEmpty(*goals),
			Milestones: rawOrEmpty(*milestones),
		})
		if err != nil {
			return err
		}
		fmt.Println("Progress tracker created.")
		return printJSON(tracker)
	case "update":
		id, rest, err := parseID(args, "tracker")
		if err != nil {
			return err
		}
		fs := flag.NewFlagSet("progress update", flag.ContinueOnError)
		goals := fs.String("goals", "", "goals payload (JSON or text)")
		milestones := fs.String("milestones", "", "milestones payload (JSON or text)")
		if err := fs.Parse(rest); err != nil {
			return err
		}
		tracker, err := a.api.Student.UpdateProgress(ctx, id, transport.ProgressUpdateRequest{
			Goals:      rawOrEmpty(*goals),
			Milestones: rawOrEmpty(*milestones),
		})
		if err != nil {
			return err
		}
		fmt.Println("Progress tracker updated.")
		return printJSON(tracker)
	default:
		return fmt.Errorf("unknown progress subcommand %q", sub)
	}
}

func (a *app) cmdMentors(ctx context.Context, args []string) error {
	sub := "search"
	if len(args) > 0 {
		sub = args[0]
		args = args[1:]
	}

	switch sub {
	case "search":
		if err := a.authorize(guard.Requirement{}); err != nil {
			return err
		}
		fs := flag.NewFlagSet("mentors search", flag.ContinueOnError)
		industry := fs.String("industry", "", "filter by industry")
		expertise := fs.String("expertise", "", "filter by expertise")
		if err := fs.Parse(args); err != nil {
			return err
		}
		mentors, err := a.api.Mentor.Search(ctx, api.SearchFilter{
			Industry:  *industry,
			Expertise: *expertise,
		})
		if err != nil {
			return err
		}
		return printJSON(mentors)
	case "get":
		if err := a.authorize(guard.Requirement{}); err != nil {
			return err
		}
		id, _, err := parseID(args, "mentor")
		if err != nil {
			return err
		}
		mentor, err := a.api.Mentor.Get(ctx, id)
		if err != nil {
			return err
		}
		return printJSON(mentor)
	case "request":
		if err := a.authorize(guard.Requirement{Role: domain.RoleStudent}); err != nil {
			return err
		}
		fs := flag.NewFlagSet("mentors request", flag.ContinueOnError)
		mentorID := fs.Int("mentor", 0, "mentor id")
		message := fs.String("message", "", "introduction message")
		if err := fs.Parse(args); err != nil {
			return err
		}
		if *mentorID == 0 {
			return domain.NewError(domain.ErrCodeInvalid, "-mentor is required")
		}
		request, err := a.api.Mentor.RequestMentorship(ctx, transport.MentorshipRequestInput{
			MentorID: *mentorID,
			Message:  *message,
		})
		if err != nil {
			return err
		}
		fmt.Println("Mentorship request sent.")
		return printJSON(request)
	case "requests":
		if err := a.authorize(guard.Requirement{}); err != nil {
			return err
		}
		requests, err := a.api.Mentor.Requests(ctx)
		if err != nil {
			return err
		}
		return printJSON(requests)
	case "respond":
		if err := a.authorize(guard.Requirement{Role: domain.RoleMentor}); err != nil {
			return err
		}
		id, rest, err := parseID(args, "request")
		if err != nil {
			return err
		}
		fs := flag.NewFlagSet("mentors respond", flag.ContinueOnError)
		status := fs.String("status", "", "approved or rejected")
		if err := fs.Parse(rest); err != nil {
			return err
		}
		request, err := a.api.Mentor.RespondToRequest(ctx, id, domain.RequestStatus(*status))
		if err != nil {
			return err
		}
		fmt.Println("Request updated.")
		return printJSON(request)
	case "resources":
		if err := a.authorize(guard.Requirement{}); err != nil {
			return err
		}
		resources, err := a.api.Mentor.Resources(ctx)
		if err != nil {
			return err
		}
		return printJSON(resources)
	case "share":
		if err := a.authorize(guard.Requirement{Role: domain.RoleMentor}); err != nil {
			return err
		}
		fs := flag.NewFlagSet("mentors share", flag.ContinueOnError)
		var req transport.ResourceRequest
		fs.StringVar(&req.Title, "title", "", "resource title")
		fs.StringVar(&req.FileType, "type", "", "file type")
		fs.StringVar(&req.Description, "description", "", "description")
		fs.StringVar(&req.FileURL, "url", "", "file URL")
		if err := fs.Parse(args); err != nil {
			return err
		}
		if req.Title == "" {
			return domain.NewError(domain.ErrCodeInvalid, "-title is required")
		}
		resource, err := a.api.Mentor.ShareResource(ctx, req)
		if err != nil {
			return err
		}
		fmt.Println("Resource shared.")
		return printJSON(resource)
	default:
		return fmt.Errorf("unknown mentors subcommand %q", sub)
	}
}

func (a *app) cmdMessages(ctx context.Context, args []string) error {
	sub := "list"
	if len(args) > 0 {
		sub = args[0]
		args = args[1:]
	}

	switch sub {
	case "list":
		if err := a.authorize(guard.Requirement{}); err != nil {
			return err
		}
		messages, err := a.api.Communication.Messages(ctx)
		if err != nil {
			return err
		}
		return printJSON(messages)
	case "send":
		if err := a.authorize(guard.Requirement{Role: domain.RoleStudent}); err != nil {
			return err
		}
		fs := flag.NewFlagSet("messages send", flag.ContinueOnError)
		to := fs.Int("to", 0, "mentor id")
		content := fs.String("content", "", "message body")
		if err := fs.Parse(args); err != nil {
			return err
		}
		if *to == 0 || *content == "" {
			return domain.NewError(domain.ErrCodeInvalid, "-to and -content are required")
		}
		msg, err := a.api.Communication.SendMessage(ctx, transport.MessageRequest{
			ReceiverID: *to,
			Content:    *content,
		})
		if err != nil {
			return err
		}
		fmt.Println("Message sent.")
		return printJSON(msg)
	case "read":
		if err := a.authorize(guard.Requirement{Role: domain.RoleMentor}); err != nil {
			return err
		}
		id, _, err := parseID(args, "message")
		if err != nil {
			return err
		}
		if err := a.api.Communication.MarkMessageRead(ctx, id); err != nil {
			return err
		}
		fmt.Println("Message marked as read.")
		return nil
	default:
		return fmt.Errorf("unknown messages subcommand %q", sub)
	}
}

func (a *app) cmdMeetings(ctx context.Context, args []string) error {
	sub := "list"
	if len(args) > 0 {
		sub = args[0]
		args = args[1:]
	}

	switch sub {
	case "list":
		if err := a.authorize(guard.Requirement{}); err != nil {
			return err
		}
		meetings, err := a.api.Communication.Meetings(ctx)
		if err != nil {
			return err
		}
		return printJSON(meetings)
	case "schedule":
		if err := a.authorize(guard.Requirement{Role: domain.RoleStudent}); err != nil {
			return err
		}
		fs := flag.NewFlagSet("meetings schedule", flag.ContinueOnError)
		mentorID := fs.Int("mentor", 0, "mentor id")
		at := fs.String("at", "", "session time (RFC 3339, e.g. 2026-09-01T15:00:00Z)")
		notes := fs.String("notes", "", "session notes")
		if err := fs.Parse(args); err != nil {
			return err
		}
		if *mentorID == 0 || *at == "" {
			return domain.NewError(domain.ErrCodeInvalid, "-mentor and -at are required")
		}
		meeting, err := a.api.Communication.ScheduleMeeting(ctx, transport.MeetingRequest{
			MentorID: *mentorID,
			DateTime: *at,
			Notes:    *notes,
		})
		if err != nil {
			return err
		}
		fmt.Println("Session requested.")
		return printJSON(meeting)
	case "update":
		if err := a.authorize(guard.Requirement{}); err != nil {
			return err
		}
		id, rest, err := parseID(args, "session")
		if err != nil {
			return err
		}
		fs := flag.NewFlagSet("meetings update", flag.ContinueOnError)
		status := fs.String("status", "", "scheduled, completed or cancelled")
		notes := fs.String("notes", "", "session notes")
		if err := fs.Parse(rest); err != nil {
			return err
		}
		meeting, err := a.api.Communication.UpdateMeeting(ctx, id, transport.MeetingUpdateRequest{
			Status: *status,
			Notes:  *notes,
		})
		if err != nil {
			return err
		}
		fmt.Println("Session updated.")
		return printJSON(meeting)
	default:
		return fmt.Errorf("unknown meetings subcommand %q", sub)
	}
}

func (a *app) cmdAdmin(ctx context.Context, args []string) error {
	if err := a.authorize(guard.Requirement{Role: domain.RoleAdmin}); err != nil {
		return err
	}
	if len(args) == 0 {
		return fmt.Errorf("admin subcommand required (users, delete, verify, pending, stats, report, profile)")
	}
	sub := args[0]
	args = args[1:]

	switch sub {
	case "users":
		fs := flag.NewFlagSet("admin users", flag.ContinueOnError)
		role := fs.String("role", "", "filter by role")
		if err := fs.Parse(args); err != nil {
			return err
		}
		users, err := a.api.Admin.Users(ctx, domain.Role(*role))
		if err != nil {
			return err
		}
		return printJSON(users)
	case "delete":
		id, _, err := parseID(args, "user")
		if err != nil {
			return err
		}
		if err := a.api.Admin.DeleteUser(ctx, id); err != nil {
			return err
		}
		fmt.Println("User deleted.")
		return nil
	case "verify":
		id, rest, err := parseID(args, "mentor")
		if err != nil {
			return err
		}
		fs := flag.NewFlagSet("admin verify", flag.ContinueOnError)
		status := fs.String("status", "", "verified or rejected")
		if err := fs.Parse(rest); err != nil {
			return err
		}
		profile, err := a.api.Admin.VerifyMentor(ctx, id, domain.VerificationStatus(*status))
		if err != nil {
			return err
		}
		fmt.Println("Mentor verification updated.")
		return printJSON(profile)
	case "pending":
		mentors, err := a.api.Admin.PendingMentors(ctx)
		if err != nil {
			return err
		}
		return printJSON(mentors)
	case "stats":
		stats, err := a.api.Admin.DashboardStats(ctx)
		if err != nil {
			return err
		}
		return printJSON(stats)
	case "report":
		sessions, err := a.api.Admin.SessionReport(ctx)
		if err != nil {
			return err
		}
		return printJSON(sessions)
	case "profile":
		fs := flag.NewFlagSet("admin profile", flag.ContinueOnError)
		var req api.AdminProfileUpdate
		fs.StringVar(&req.Name, "name", "", "full name")
		fs.StringVar(&req.PhoneNumber, "phone", "", "phone number")
		fs.StringVar(&req.Email, "email", "", "email address")
		if err := fs.Parse(args); err != nil {
			return err
		}
		user, err := a.api.Admin.UpdateProfile(ctx, req)
		if err != nil {
			return err
		}
		a.store.UpdateUser(user, nil)
		fmt.Println("Profile updated.")
		return printJSON(user)
	default:
		return fmt.Errorf("unknown admin subcommand %q", sub)
	}
}
