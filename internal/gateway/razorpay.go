package gateway

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"frontend/internal/domain"
	"frontend/internal/domain/models"
	"frontend/internal/utils"
)

const checkoutScript = "https://checkout.razorpay.com/v1/checkout.js"

// Razorpay drives Razorpay standard checkout from outside a browser: Open
// starts a short-lived local server that hosts the checkout page and
// receives the handler's completion POST, then shuts down.
type Razorpay struct {
	KeyID string
	// Addr to listen on; ":0" picks a free port.
	Addr string

	mu sync.Mutex
	ln net.Listener
}

// URL is the address of the hosted checkout page once Open has succeeded.
func (r *Razorpay) URL() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.ln == nil {
		return ""
	}
	return "http://" + r.ln.Addr().String()
}

func (r *Razorpay) Open(ctx context.Context, order models.Order, onComplete func(Completion)) error {
	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(cors.New(cors.Config{
		AllowOrigins: []string{"https://checkout.razorpay.com", "https://api.razorpay.com"},
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowHeaders: []string{"Content-Type", "Accept", "Origin"},
		MaxAge:       24 * time.Hour,
	}))
	if err := engine.SetTrustedProxies(nil); err != nil {
		utils.LogEvent("", "gateway", "open", "trusted proxies: "+err.Error())
	}

	srv := &http.Server{
		Handler:           engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	var once sync.Once
	engine.GET("/", func(c *gin.Context) {
		c.Data(http.StatusOK, "text/html; charset=utf-8", checkoutPage(r.KeyID, order))
	})
	engine.POST("/callback", func(c *gin.Context) {
		var cb struct {
			OrderID   string `form:"razorpay_order_id" json:"razorpay_order_id"`
			PaymentID string `form:"razorpay_payment_id" json:"razorpay_payment_id"`
			Signature string `form:"razorpay_signature" json:"razorpay_signature"`
		}
		if err := c.ShouldBind(&cb); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "invalid callback payload"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "payment received, you can close this tab"})
		once.Do(func() {
			go func() {
				onComplete(Completion{
					OrderID:   cb.OrderID,
					PaymentID: cb.PaymentID,
					Signature: cb.Signature,
				})
				r.shutdown(srv)
			}()
		})
	})
	engine.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"message": "route not found", "path": c.Request.URL.Path})
	})

	addr := r.Addr
	if addr == "" {
		addr = "127.0.0.1:0"
	}
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return domain.GatewayError{Msg: "cannot open checkout listener", Err: err}
	}
	r.mu.Lock()
	r.ln = ln
	r.mu.Unlock()

	go func() {
		if err := srv.Serve(ln); err != nil && err != http.ErrServerClosed {
			utils.LogEvent("", "gateway", "serve", err.Error())
		}
	}()
	go func() {
		<-ctx.Done()
		r.shutdown(srv)
	}()

	utils.LogEvent("", "gateway", "open", "order="+order.ID+" checkout at "+r.URL())
	return nil
}

func (r *Razorpay) shutdown(srv *http.Server) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = srv.Shutdown(ctx)
}

func checkoutPage(keyID string, order models.Order) []byte {
	page := fmt.Sprintf(`<!doctype html>
<html>
<head><meta charset="utf-8"><title>Complete your payment</title></head>
<body>
<p>Opening secure checkout…</p>
<script src=%q></script>
<script>
var rzp = new Razorpay({
  key: %q,
  order_id: %q,
  amount: %d,
  currency: %q,
  handler: function (response) {
    fetch("/callback", {
      method: "POST",
      headers: { "Content-Type": "application/json" },
      body: JSON.stringify(response)
    }).then(function () {
      document.body.innerHTML = "<p>Payment received. You can return to the app.</p>";
    });
  }
});
rzp.open();
</script>
</body>
</html>`, checkoutScript, keyID, order.ID, order.Amount, order.Currency)
	return []byte(page)
}
