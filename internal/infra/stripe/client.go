package stripe

import (
	"context"

	"github.com/stripe/stripe-go/v80"
	portalsession "github.com/stripe/stripe-go/v80/billingportal/session"
	checkoutsession "github.com/stripe/stripe-go/v80/checkout/session"
	"github.com/stripe/stripe-go/v80/customer"
	"github.com/stripe/stripe-go/v80/webhook"
)

// Stripe APIへのゲートウェイ。
// usecase側はBillingGatewayインターフェース越しに使う。
type Client struct {
	webhookSecret  string
	premiumPriceID string
}

// DI
func NewClient(secretKey string, webhookSecret string, premiumPriceID string) *Client {
	stripe.Key = secretKey
	return &Client{
		webhookSecret:  webhookSecret,
		premiumPriceID: premiumPriceID,
	}
}

// Stripe顧客を作成してIDを返す。user_idをmetadataに載せる。
func (c *Client) CreateCustomer(ctx context.Context, email string, userID string) (string, error) {
	params := &stripe.CustomerParams{
		Email: stripe.String(email),
	}
	params.Context = ctx
	params.AddMetadata("user_id", userID)

	cus, err := customer.New(params)
	if err != nil {
		return "", err
	}
	return cus.ID, nil
}

// サブスクリプション用のチェックアウトセッションを作成しURLを返す。
// user_idのmetadataはWebhook側の相関キーなので必須。
func (c *Client) CreateCheckoutSession(ctx context.Context, customerID string, userID string, origin string) (string, error) {
	params := &stripe.CheckoutSessionParams{
		Customer:           stripe.String(customerID),
		Mode:               stripe.String(string(stripe.CheckoutSessionModeSubscription)),
		PaymentMethodTypes: stripe.StringSlice([]string{"card"}),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				Price:    stripe.String(c.premiumPriceID),
				Quantity: stripe.Int64(1),
			},
		},
		SuccessURL: stripe.String(origin + "/admin/billing?success=true"),
		CancelURL:  stripe.String(origin + "/admin/billing?canceled=true"),
		SubscriptionData: &stripe.CheckoutSessionSubscriptionDataParams{
			Metadata: map[string]string{"user_id": userID},
		},
	}
	params.Context = ctx
	params.AddMetadata("user_id", userID)

	sess, err := checkoutsession.New(params)
	if err != nil {
		return "", err
	}
	return sess.URL, nil
}

// カスタマーポータルのセッションを作成しURLを返す。
func (c *Client) CreatePortalSession(ctx context.Context, customerID string, origin string) (string, error) {
	params := &stripe.BillingPortalSessionParams{
		Customer:  stripe.String(customerID),
		ReturnURL: stripe.String(origin + "/admin/billing"),
	}
	params.Context = ctx

	sess, err := portalsession.New(params)
	if err != nil {
		return "", err
	}
	return sess.URL, nil
}

// 署名ヘッダを検証してイベントを復元する。検証失敗はエラー。
func (c *Client) ParseWebhook(payload []byte, sigHeader string) (stripe.Event, error) {
	return webhook.ConstructEvent(payload, sigHeader, c.webhookSecret)
}
