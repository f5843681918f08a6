package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"frontend/internal/api"
	"frontend/internal/auth"
	"frontend/internal/booking"
	"frontend/internal/config"
	"frontend/internal/docs"
	"frontend/internal/domain"
	"frontend/internal/domain/models"
	"frontend/internal/gateway"
	"frontend/internal/notify"
	"frontend/internal/tokenstore"
	"frontend/internal/utils"
)

func main() {
	var (
		pkgName  = flag.String("package", "Golden Triangle", "tour package name")
		pkgDays  = flag.Int("days", 3, "package minimum duration in days")
		pkgPrice = flag.Int64("price", 1000, "package base price per day per person")
	)
	flag.Parse()

	env := config.LoadEnv()
	if env.GinMode != "" {
		gin.SetMode(env.GinMode)
	}

	client := api.NewClient(env.APIBaseURL, env.HTTPTimeout)
	tokens := tokenstore.New(env.TokenPath)
	session := auth.NewStore(client, tokens, notify.Terminal{})

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	// restore any previous session before the first prompt
	session.CheckAuth(ctx)
	if u := session.User(); u != nil {
		fmt.Printf("Welcome back, %s\n", u.FullName)
	}

	pkg := models.Package{Name: *pkgName, Days: *pkgDays, PricePerDay: *pkgPrice}
	app := &cli{
		env:     env,
		client:  client,
		session: session,
		pkg:     pkg,
		in:      bufio.NewScanner(os.Stdin),
	}

	if err := app.run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		log.Fatalf("fatal: %v", err)
	}
	fmt.Println("Bye.")
}

type cli struct {
	env     config.Env
	client  *api.Client
	session *auth.Store
	pkg     models.Package
	in      *bufio.Scanner
}

func (a *cli) run(ctx context.Context) error {
	fmt.Println("Commands: login, signup, verify, resend, reset-password, whoami, book, logout, quit")
	for {
		line, ok := a.prompt(ctx, "> ")
		if !ok {
			return ctx.Err()
		}
		switch strings.ToLower(line) {
		case "":
		case "login":
			a.login(ctx)
		case "signup":
			a.signup(ctx)
		case "verify":
			a.verifyOTP(ctx)
		case "resend":
			mobile, _ := a.prompt(ctx, "mobile: ")
			a.session.ResendOTP(ctx, mobile)
		case "reset-password":
			a.resetPassword(ctx)
		case "whoami":
			a.whoami()
		case "book":
			a.book(ctx)
		case "logout":
			a.session.Logout()
		case "quit", "exit":
			return nil
		default:
			fmt.Println("unknown command:", line)
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
	}
}

func (a *cli) login(ctx context.Context) {
	var in models.LoginInput
	in.ISOCode, _ = a.prompt(ctx, "country code (e.g. +91): ")
	in.Mobile, _ = a.prompt(ctx, "mobile: ")
	in.Password, _ = a.prompt(ctx, "password: ")
	a.session.Login(ctx, in)
	if msg := a.session.Err(); msg != "" {
		fmt.Println(msg)
	}
}

func (a *cli) signup(ctx context.Context) {
	var in models.UserInput
	in.FullName, _ = a.prompt(ctx, "full name: ")
	in.ISOCode, _ = a.prompt(ctx, "country code (e.g. +91): ")
	in.Mobile, _ = a.prompt(ctx, "mobile: ")
	in.Password, _ = a.prompt(ctx, "password: ")
	in.Question, _ = a.prompt(ctx, "security question: ")
	in.Answer, _ = a.prompt(ctx, "security answer: ")
	if a.session.Signup(ctx, in) {
		fmt.Println("Check your phone for the OTP, then run `verify`.")
	} else if msg := a.session.Err(); msg != "" {
		fmt.Println(msg)
	}
}

func (a *cli) verifyOTP(ctx context.Context) {
	mobile, _ := a.prompt(ctx, "mobile (with country code): ")
	otp, _ := a.prompt(ctx, "otp: ")
	a.session.VerifyOTP(ctx, otp, mobile)
}

func (a *cli) resetPassword(ctx context.Context) {
	var in models.ResetInput
	in.ISOCode, _ = a.prompt(ctx, "country code (e.g. +91): ")
	in.Mobile, _ = a.prompt(ctx, "mobile: ")
	in.Question, _ = a.prompt(ctx, "security question: ")
	in.Answer, _ = a.prompt(ctx, "security answer: ")
	in.Password, _ = a.prompt(ctx, "new password: ")
	a.session.ResetPassword(ctx, in)
}

func (a *cli) whoami() {
	u := a.session.User()
	if u == nil {
		fmt.Println("Not logged in.")
		return
	}
	role := "user"
	if a.session.IsAdmin() {
		role = "admin"
	}
	fmt.Printf("%s (%s) role=%s cashback=%s\n",
		u.FullName, u.Mobile, role, utils.FormatRupee(u.CashbackAmount))
}

// book walks the booking card: adjust people/days/hotel/date, then pay.
func (a *cli) book(ctx context.Context) {
	input := booking.NewInput(a.pkg)
	nav := terminalNavigator{}
	gw := &gateway.Razorpay{KeyID: a.env.RazorpayKeyID, Addr: a.env.CallbackAddr}
	flow := booking.NewFlow(a.client, a.session, gw, notify.Terminal{}, nav)
	flow.OnReceipt = func(p models.BookingPayload, cashback int64) {
		r := docs.NewReceipt(p, input.Detail(), cashback, input.PayOnline())
		path, err := r.Write(a.env.ReceiptDir)
		if err != nil {
			utils.LogEvent("", "docs", "receipt", "write skipped: "+err.Error())
			return
		}
		fmt.Println("Receipt saved to", path)
	}

	for {
		a.printCard(input)
		line, ok := a.prompt(ctx, "adjust (p+ p- d+ d- 3star 5star date <YYYY-MM-DD> paylater payonline) or `pay` / `cancel`: ")
		if !ok {
			return
		}
		fields := strings.Fields(strings.ToLower(line))
		if len(fields) == 0 {
			continue
		}
		switch fields[0] {
		case "p+":
			input.IncrementPeople()
		case "p-":
			input.DecrementPeople()
		case "d+":
			input.IncrementDays()
		case "d-":
			input.DecrementDays()
		case "3star":
			input.SelectHotel(domain.HotelThreeStar)
		case "5star":
			input.SelectHotel(domain.HotelFiveStar)
		case "date":
			if len(fields) < 2 {
				fmt.Println("usage: date YYYY-MM-DD")
				continue
			}
			t, err := utils.ParseDate(fields[1])
			if err != nil {
				fmt.Println("invalid date:", fields[1])
				continue
			}
			input.SetStartDate(t)
		case "paylater":
			input.SetPayOnline(false)
		case "payonline":
			input.SetPayOnline(true)
		case "cancel":
			return
		case "pay":
			a.pay(ctx, flow, gw, input)
			return
		default:
			fmt.Println("unknown adjustment:", fields[0])
		}
	}
}

func (a *cli) pay(ctx context.Context, flow *booking.Flow, gw *gateway.Razorpay, input *booking.Input) {
	err := flow.Book(ctx, input)
	if errors.Is(err, booking.ErrLoginRequired) {
		fmt.Println("Please login to book your trip")
		return
	}
	if err != nil {
		return // already notified
	}
	if !input.PayOnline() {
		return
	}

	fmt.Println("Complete your payment in the browser:", gw.URL())
	for {
		select {
		case <-ctx.Done():
			return
		case <-time.After(200 * time.Millisecond):
		}
		if flow.State() == booking.StateRevealing {
			break
		}
		if flow.State() == booking.StateIdle {
			// verification failed, already notified
			return
		}
	}

	if amount, ok := flow.Reward(); ok {
		fmt.Println("You won a scratch card! Press enter to scratch it.")
		if _, ok := a.prompt(ctx, ""); !ok {
			return
		}
		fmt.Printf("🎉 Cashback unlocked: %s\n", utils.FormatRupee(amount))
	}
	flow.CompleteReveal()
	select {
	case <-flow.Done():
	case <-ctx.Done():
	}
}

func (a *cli) printCard(in *booking.Input) {
	hotel := in.Hotel()
	if hotel == "" {
		hotel = "none"
	}
	mode := "pay later"
	if in.PayOnline() {
		mode = "pay online"
	}
	fmt.Printf("\n%s - %d days\n", a.pkg.Name, in.Days())
	fmt.Printf("  people: %d   start: %s   hotel: %s   (%s)\n",
		in.People(), utils.FormatDisplayDate(in.StartDate()), hotel, mode)
	fmt.Printf("  3 Star would add %s, 5 Star %s\n",
		utils.FormatRupee(in.TierSurcharge(domain.HotelThreeStar)),
		utils.FormatRupee(in.TierSurcharge(domain.HotelFiveStar)))
	fmt.Printf("  price: %s\n", utils.FormatRupee(in.Price()))
}

// prompt reads one trimmed line; ok is false on EOF or cancellation.
func (a *cli) prompt(ctx context.Context, label string) (string, bool) {
	if ctx.Err() != nil {
		return "", false
	}
	if label != "" {
		fmt.Print(label)
	}
	if !a.in.Scan() {
		return "", false
	}
	return strings.TrimSpace(a.in.Text()), true
}

type terminalNavigator struct{}

func (terminalNavigator) Push(path string)    { fmt.Println("→", path) }
func (terminalNavigator) Replace(path string) { fmt.Println("→", path) }
