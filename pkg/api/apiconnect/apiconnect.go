// Package apiconnect wires the splitwallet.v1 services to Connect handlers
// and clients.
package apiconnect

import (
	"context"
	"net/http"
	"strings"

	"connectrpc.com/connect"
	"google.golang.org/protobuf/types/known/emptypb"

	"github.com/mmynk/splitwallet/pkg/api"
)

const (
	AuthServiceName       = "splitwallet.v1.AuthService"
	WalletServiceName     = "splitwallet.v1.WalletService"
	PaymentServiceName    = "splitwallet.v1.PaymentService"
	SettlementServiceName = "splitwallet.v1.SettlementService"
)

// Fully-qualified procedure names.
const (
	AuthServiceRegisterProcedure                  = "/" + AuthServiceName + "/Register"
	AuthServiceLoginProcedure                     = "/" + AuthServiceName + "/Login"
	AuthServiceGetCurrentUserProcedure            = "/" + AuthServiceName + "/GetCurrentUser"
	WalletServiceCreateWalletProcedure            = "/" + WalletServiceName + "/CreateWallet"
	WalletServiceListWalletsProcedure             = "/" + WalletServiceName + "/ListWallets"
	WalletServiceGetWalletProcedure               = "/" + WalletServiceName + "/GetWallet"
	WalletServiceUpdateWalletProcedure            = "/" + WalletServiceName + "/UpdateWallet"
	WalletServiceDeleteWalletProcedure            = "/" + WalletServiceName + "/DeleteWallet"
	WalletServiceGetInviteProcedure               = "/" + WalletServiceName + "/GetInvite"
	WalletServiceJoinWalletProcedure              = "/" + WalletServiceName + "/JoinWallet"
	PaymentServiceCreatePaymentProcedure          = "/" + PaymentServiceName + "/CreatePayment"
	PaymentServiceListPaymentsProcedure           = "/" + PaymentServiceName + "/ListPayments"
	PaymentServiceGetPaymentProcedure             = "/" + PaymentServiceName + "/GetPayment"
	PaymentServiceUpdatePaymentProcedure          = "/" + PaymentServiceName + "/UpdatePayment"
	PaymentServiceDeletePaymentProcedure          = "/" + PaymentServiceName + "/DeletePayment"
	SettlementServiceGetSettlementStatusProcedure = "/" + SettlementServiceName + "/GetSettlementStatus"
	SettlementServiceRecordSettlementsProcedure   = "/" + SettlementServiceName + "/RecordSettlements"
	SettlementServiceUpdateSettlementProcedure    = "/" + SettlementServiceName + "/UpdateSettlement"
	SettlementServiceDeleteSettlementProcedure    = "/" + SettlementServiceName + "/DeleteSettlement"
)

// AuthServiceHandler is implemented by the server side of AuthService.
type AuthServiceHandler interface {
	Register(context.Context, *connect.Request[api.RegisterRequest]) (*connect.Response[api.AuthResponse], error)
	Login(context.Context, *connect.Request[api.LoginRequest]) (*connect.Response[api.AuthResponse], error)
	GetCurrentUser(context.Context, *connect.Request[emptypb.Empty]) (*connect.Response[api.GetCurrentUserResponse], error)
}

// NewAuthServiceHandler builds an HTTP handler serving every AuthService procedure.
// The returned path is the mount point for an http.ServeMux.
func NewAuthServiceHandler(svc AuthServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = handlerOptions(opts)
	mux := http.NewServeMux()
	mux.Handle(AuthServiceRegisterProcedure, connect.NewUnaryHandler(AuthServiceRegisterProcedure, svc.Register, opts...))
	mux.Handle(AuthServiceLoginProcedure, connect.NewUnaryHandler(AuthServiceLoginProcedure, svc.Login, opts...))
	mux.Handle(AuthServiceGetCurrentUserProcedure, connect.NewUnaryHandler(AuthServiceGetCurrentUserProcedure, svc.GetCurrentUser, opts...))
	return "/" + AuthServiceName + "/", mux
}

// AuthServiceClient is a client for AuthService.
type AuthServiceClient interface {
	Register(context.Context, *connect.Request[api.RegisterRequest]) (*connect.Response[api.AuthResponse], error)
	Login(context.Context, *connect.Request[api.LoginRequest]) (*connect.Response[api.AuthResponse], error)
	GetCurrentUser(context.Context, *connect.Request[emptypb.Empty]) (*connect.Response[api.GetCurrentUserResponse], error)
}

// NewAuthServiceClient constructs a client for AuthService at baseURL.
func NewAuthServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) AuthServiceClient {
	baseURL = strings.TrimRight(baseURL, "/")
	opts    = clientOptions(opts)
	return &authServiceClient{
		register:       connect.NewClient[api.RegisterRequest, api.AuthResponse](httpClient, baseURL+AuthServiceRegisterProcedure, opts...),
		login:          connect.NewClient[api.LoginRequest, api.AuthResponse](httpClient, baseURL+AuthServiceLoginProcedure, opts...),
		getCurrentUser: connect.NewClient[emptypb.Empty, api.GetCurrentUserResponse](httpClient, baseURL+AuthServiceGetCurrentUserProcedure, opts...),
	}
}

type authServiceClient struct {
	register       *connect.Client[api.RegisterRequest, api.AuthResponse]
	login          *connect.Client[api.LoginRequest, api.AuthResponse]
	getCurrentUser *connect.Client[emptypb.Empty, api.GetCurrentUserResponse]
}

func (c *authServiceClient) Register(ctx context.Context, req *connect.Request[api.RegisterRequest]) (*connect.Response[api.AuthResponse], error) {
	return c.register.CallUnary(ctx, req)
}

func (c *authServiceClient) Login(ctx context.Context, req *connect.Request[api.LoginRequest]) (*connect.Response[api.AuthResponse], error) {
	return c.login.CallUnary(ctx, req)
}

func (c *authServiceClient) GetCurrentUser(ctx context.Context, req *connect.Request[emptypb.Empty]) (*connect.Response[api.GetCurrentUserResponse], error) {
	return c.getCurrentUser.CallUnary(ctx, req)
}

// WalletServiceHandler is implemented by the server side of WalletService.
type WalletServiceHandler interface {
	CreateWallet(context.Context, *connect.Request[api.CreateWalletRequest]) (*connect.Response[api.WalletResponse], error)
	ListWallets(context.Context, *connect.Request[emptypb.Empty]) (*connect.Response[api.ListWalletsResponse], error)
	GetWallet(context.Context, *connect.Request[api.GetWalletRequest]) (*connect.Response[api.GetWalletResponse], error)
	UpdateWallet(context.Context, *connect.Request[api.UpdateWalletRequest]) (*connect.Response[api.WalletResponse], error)
	DeleteWallet(context.Context, *connect.Request[api.DeleteWalletRequest]) (*connect.Response[emptypb.Empty], error)
	GetInvite(context.Context, *connect.Request[api.GetInviteRequest]) (*connect.Response[api.InvitePreview], error)
	JoinWallet(context.Context, *connect.Request[api.JoinWalletRequest]) (*connect.Response[api.WalletResponse], error)
}

// NewWalletServiceHandler builds an HTTP handler serving every WalletService procedure.
// The returned path is the mount point for an http.ServeMux.
func NewWalletServiceHandler(svc WalletServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = handlerOptions(opts)
	mux := http.NewServeMux()
	mux.Handle(WalletServiceCreateWalletProcedure, connect.NewUnaryHandler(WalletServiceCreateWalletProcedure, svc.CreateWallet, opts...))
	mux.Handle(WalletServiceListWalletsProcedure, connect.NewUnaryHandler(WalletServiceListWalletsProcedure, svc.ListWallets, opts...))
	mux.Handle(WalletServiceGetWalletProcedure, connect.NewUnaryHandler(WalletServiceGetWalletProcedure, svc.GetWallet, opts...))
	mux.Handle(WalletServiceUpdateWalletProcedure, connect.NewUnaryHandler(WalletServiceUpdateWalletProcedure, svc.UpdateWallet, opts...))
	mux.Handle(WalletServiceDeleteWalletProcedure, connect.NewUnaryHandler(WalletServiceDeleteWalletProcedure, svc.DeleteWallet, opts...))
	mux.Handle(WalletServiceGetInviteProcedure, connect.NewUnaryHandler(WalletServiceGetInviteProcedure, svc.GetInvite, opts...))
	mux.Handle(WalletServiceJoinWalletProcedure, connect.NewUnaryHandler(WalletServiceJoinWalletProcedure, svc.JoinWallet, opts...))
	return "/" + WalletServiceName + "/", mux
}

// WalletServiceClient is a client for WalletService.
type WalletServiceClient interface {
	CreateWallet(context.Context, *connect.Request[api.CreateWalletRequest]) (*connect.Response[api.WalletResponse], error)
	ListWallets(context.Context, *connect.Request[emptypb.Empty]) (*connect.Response[api.ListWalletsResponse], error)
	GetWallet(context.Context, *connect.Request[api.GetWalletRequest]) (*connect.Response[api.GetWalletResponse], error)
	UpdateWallet(context.Context, *connect.Request[api.UpdateWalletRequest]) (*connect.Response[api.WalletResponse], error)
	DeleteWallet(context.Context, *connect.Request[api.DeleteWalletRequest]) (*connect.Response[emptypb.Empty], error)
	GetInvite(context.Context, *connect.Request[api.GetInviteRequest]) (*connect.Response[api.InvitePreview], error)
	JoinWallet(context.Context, *connect.Request[api.JoinWalletRequest]) (*connect.Response[api.WalletResponse], error)
}

// NewWalletServiceClient constructs a client for WalletService at baseURL.
func NewWalletServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) WalletServiceClient {
	baseURL = strings.TrimRight(baseURL, "/")
	opts    = clientOptions(opts)
	return &walletServiceClient{
		createWallet: connect.NewClient[api.CreateWalletRequest, api.WalletResponse](httpClient, baseURL+WalletServiceCreateWalletProcedure, opts...),
		listWallets:  connect.NewClient[emptypb.Empty, api.ListWalletsResponse](httpClient, baseURL+WalletServiceListWalletsProcedure, opts...),
		getWallet:    connect.NewClient[api.GetWalletRequest, api.GetWalletResponse](httpClient, baseURL+WalletServiceGetWalletProcedure, opts...),
		updateWallet: connect.NewClient[api.UpdateWalletRequest, api.WalletResponse](httpClient, baseURL+WalletServiceUpdateWalletProcedure, opts...),
		deleteWallet: connect.NewClient[api.DeleteWalletRequest, emptypb.Empty](httpClient, baseURL+WalletServiceDeleteWalletProcedure, opts...),
		getInvite:    connect.NewClient[api.GetInviteRequest, api.InvitePreview](httpClient, baseURL+WalletServiceGetInviteProcedure, opts...),
		joinWallet:   connect.NewClient[api.JoinWalletRequest, api.WalletResponse](httpClient, baseURL+WalletServiceJoinWalletProcedure, opts...),
	}
}

type walletServiceClient struct {
	createWallet *connect.Client[api.CreateWalletRequest, api.WalletResponse]
	listWallets  *connect.Client[emptypb.Empty, api.ListWalletsResponse]
	getWallet    *connect.Client[api.GetWalletRequest, api.GetWalletResponse]
	updateWallet *connect.Client[api.UpdateWalletRequest, api.WalletResponse]
	deleteWallet *connect.Client[api.DeleteWalletRequest, emptypb.Empty]
	getInvite    *connect.Client[api.GetInviteRequest, api.InvitePreview]
	joinWallet   *connect.Client[api.JoinWalletRequest, api.WalletResponse]
}

func (c *walletServiceClient) CreateWallet(ctx context.Context, req *connect.Request[api.CreateWalletRequest]) (*connect.Response[api.WalletResponse], error) {
	return c.createWallet.CallUnary(ctx, req)
}

func (c *walletServiceClient) ListWallets(ctx context.Context, req *connect.Request[emptypb.Empty]) (*connect.Response[api.ListWalletsResponse], error) {
	return c.listWallets.CallUnary(ctx, req)
}

func (c *walletServiceClient) GetWallet(ctx context.Context, req *connect.Request[api.GetWalletRequest]) (*connect.Response[api.GetWalletResponse], error) {
	return c.getWallet.CallUnary(ctx, req)
}

func (c *walletServiceClient) UpdateWallet(ctx context.Context, req *connect.Request[api.UpdateWalletRequest]) (*connect.Response[api.WalletResponse], error) {
	return c.updateWallet.CallUnary(ctx, req)
}

func (c *walletServiceClient) DeleteWallet(ctx context.Context, req *connect.Request[api.DeleteWalletRequest]) (*connect.Response[emptypb.Empty], error) {
	return c.deleteWallet.CallUnary(ctx, req)
}

func (c *walletServiceClient) GetInvite(ctx context.Context, req *connect.Request[api.GetInviteRequest]) (*connect.Response[api.InvitePreview], error) {
	return c.getInvite.CallUnary(ctx, req)
}

func (c *walletServiceClient) JoinWallet(ctx context.Context, req *connect.Request[api.JoinWalletRequest]) (*connect.Response[api.WalletResponse], error) {
	return c.joinWallet.CallUnary(ctx, req)
}

// PaymentServiceHandler is implemented by the server side of PaymentService.
type PaymentServiceHandler interface {
	CreatePayment(context.Context, *connect.Request[api.CreatePaymentRequest]) (*connect.Response[api.PaymentResponse], error)
	ListPayments(context.Context, *connect.Request[api.ListPaymentsRequest]) (*connect.Response[api.ListPaymentsResponse], error)
	GetPayment(context.Context, *connect.Request[api.GetPaymentRequest]) (*connect.Response[api.PaymentResponse], error)
	UpdatePayment(context.Context, *connect.Request[api.UpdatePaymentRequest]) (*connect.Response[api.PaymentResponse], error)
	DeletePayment(context.Context, *connect.Request[api.DeletePaymentRequest]) (*connect.Response[emptypb.Empty], error)
}

// NewPaymentServiceHandler builds an HTTP handler serving every PaymentService procedure.
// The returned path is the mount point for an http.ServeMux.
func NewPaymentServiceHandler(svc PaymentServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = handlerOptions(opts)
	mux := http.NewServeMux()
	mux.Handle(PaymentServiceCreatePaymentProcedure, connect.NewUnaryHandler(PaymentServiceCreatePaymentProcedure, svc.CreatePayment, opts...))
	mux.Handle(PaymentServiceListPaymentsProcedure, connect.NewUnaryHandler(PaymentServiceListPaymentsProcedure, svc.ListPayments, opts...))
	mux.Handle(PaymentServiceGetPaymentProcedure, connect.NewUnaryHandler(PaymentServiceGetPaymentProcedure, svc.GetPayment, opts...))
	mux.Handle(PaymentServiceUpdatePaymentProcedure, connect.NewUnaryHandler(PaymentServiceUpdatePaymentProcedure, svc.UpdatePayment, opts...))
	mux.Handle(PaymentServiceDeletePaymentProcedure, connect.NewUnaryHandler(PaymentServiceDeletePaymentProcedure, svc.DeletePayment, opts...))
	return "/" + PaymentServiceName + "/", mux
}

// PaymentServiceClient is a client for PaymentService.
type PaymentServiceClient interface {
	CreatePayment(context.Context, *connect.Request[api.CreatePaymentRequest]) (*connect.Response[api.PaymentResponse], error)
	ListPayments(context.Context, *connect.Request[api.ListPaymentsRequest]) (*connect.Response[api.ListPaymentsResponse], error)
	GetPayment(context.Context, *connect.Request[api.GetPaymentRequest]) (*connect.Response[api.PaymentResponse], error)
	UpdatePayment(context.Context, *connect.Request[api.UpdatePaymentRequest]) (*connect.Response[api.PaymentResponse], error)
	DeletePayment(context.Context, *connect.Request[api.DeletePaymentRequest]) (*connect.Response[emptypb.Empty], error)
}

// NewPaymentServiceClient constructs a client for PaymentService at baseURL.
func NewPaymentServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) PaymentServiceClient {
	baseURL = strings.TrimRight(baseURL, "/")
	opts    = clientOptions(opts)
	return &paymentServiceClient{
		createPayment: connect.NewClient[api.CreatePaymentRequest, api.PaymentResponse](httpClient, baseURL+PaymentServiceCreatePaymentProcedure, opts...),
		listPayments:  connect.NewClient[api.ListPaymentsRequest, api.ListPaymentsResponse](httpClient, baseURL+PaymentServiceListPaymentsProcedure, opts...),
		getPayment:    connect.NewClient[api.GetPaymentRequest, api.PaymentResponse](httpClient, baseURL+PaymentServiceGetPaymentProcedure, opts...),
		updatePayment: connect.NewClient[api.UpdatePaymentRequest, api.PaymentResponse](httpClient, baseURL+PaymentServiceUpdatePaymentProcedure, opts...),
		deletePayment: connect.NewClient[api.DeletePaymentRequest, emptypb.Empty](httpClient, baseURL+PaymentServiceDeletePaymentProcedure, opts...),
	}
}

type paymentServiceClient struct {
	createPayment *connect.Client[api.CreatePaymentRequest, api.PaymentResponse]
	listPayments  *connect.Client[api.ListPaymentsRequest, api.ListPaymentsResponse]
	getPayment    *connect.Client[api.GetPaymentRequest, api.PaymentResponse]
	updatePayment *connect.Client[api.UpdatePaymentRequest, api.PaymentResponse]
	deletePayment *connect.Client[api.DeletePaymentRequest, emptypb.Empty]
}

func (c *paymentServiceClient) CreatePayment(ctx context.Context, req *connect.Request[api.CreatePaymentRequest]) (*connect.Response[api.PaymentResponse], error) {
	return c.createPayment.CallUnary(ctx, req)
}

func (c *paymentServiceClient) ListPayments(ctx context.Context, req *connect.Request[api.ListPaymentsRequest]) (*connect.Response[api.ListPaymentsResponse], error) {
	return c.listPayments.CallUnary(ctx, req)
}

func (c *paymentServiceClient) GetPayment(ctx context.Context, req *connect.Request[api.GetPaymentRequest]) (*connect.Response[api.PaymentResponse], error) {
	return c.getPayment.CallUnary(ctx, req)
}

func (c *paymentServiceClient) UpdatePayment(ctx context.Context, req *connect.Request[api.UpdatePaymentRequest]) (*connect.Response[api.PaymentResponse], error) {
	return c.updatePayment.CallUnary(ctx, req)
}

func (c *paymentServiceClient) DeletePayment(ctx context.Context, req *connect.Request[api.DeletePaymentRequest]) (*connect.Response[emptypb.Empty], error) {
	return c.deletePayment.CallUnary(ctx, req)
}

// SettlementServiceHandler is implemented by the server side of SettlementService.
type SettlementServiceHandler interface {
	GetSettlementStatus(context.Context, *connect.Request[api.GetSettlementStatusRequest]) (*connect.Response[api.SettlementStatus], error)
	RecordSettlements(context.Context, *connect.Request[api.RecordSettlementsRequest]) (*connect.Response[api.RecordSettlementsResponse], error)
	UpdateSettlement(context.Context, *connect.Request[api.UpdateSettlementRequest]) (*connect.Response[api.SettlementResponse], error)
	DeleteSettlement(context.Context, *connect.Request[api.DeleteSettlementRequest]) (*connect.Response[emptypb.Empty], error)
}

// NewSettlementServiceHandler builds an HTTP handler serving every SettlementService procedure.
// The returned path is the mount point for an http.ServeMux.
func NewSettlementServiceHandler(svc SettlementServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = handlerOptions(opts)
	mux := http.NewServeMux()
	mux.Handle(SettlementServiceGetSettlementStatusProcedure, connect.NewUnaryHandler(SettlementServiceGetSettlementStatusProcedure, svc.GetSettlementStatus, opts...))
	mux.Handle(SettlementServiceRecordSettlementsProcedure, connect.NewUnaryHandler(SettlementServiceRecordSettlementsProcedure, svc.RecordSettlements, opts...))
	mux.Handle(SettlementServiceUpdateSettlementProcedure, connect.NewUnaryHandler(SettlementServiceUpdateSettlementProcedure, svc.UpdateSettlement, opts...))
	mux.Handle(SettlementServiceDeleteSettlementProcedure, connect.NewUnaryHandler(SettlementServiceDeleteSettlementProcedure, svc.DeleteSettlement, opts...))
	return "/" + SettlementServiceName + "/", mux
}

// SettlementServiceClient is a client for SettlementService.
type SettlementServiceClient interface {
	GetSettlementStatus(context.Context, *connect.Request[api.GetSettlementStatusRequest]) (*connect.Response[api.SettlementStatus], error)
	RecordSettlements(context.Context, *connect.Request[api.RecordSettlementsRequest]) (*connect.Response[api.RecordSettlementsResponse], error)
	UpdateSettlement(context.Context, *connect.Request[api.UpdateSettlementRequest]) (*connect.Response[api.SettlementResponse], error)
	DeleteSettlement(context.Context, *connect.Request[api.DeleteSettlementRequest]) (*connect.Response[emptypb.Empty], error)
}

// NewSettlementServiceClient constructs a client for SettlementService at baseURL.
func NewSettlementServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) SettlementServiceClient {
	baseURL = strings.TrimRight(baseURL, "/")
	opts    = clientOptions(opts)
	return &settlementServiceClient{
		getSettlementStatus: connect.NewClient[api.GetSettlementStatusRequest, api.SettlementStatus](httpClient, baseURL+SettlementServiceGetSettlementStatusProcedure, opts...),
		recordSettlements:   connect.NewClient[api.RecordSettlementsRequest, api.RecordSettlementsResponse](httpClient, baseURL+SettlementServiceRecordSettlementsProcedure, opts...),
		updateSettlement:    connect.NewClient[api.UpdateSettlementRequest, api.SettlementResponse](httpClient, baseURL+SettlementServiceUpdateSettlementProcedure, opts...),
		deleteSettlement:    connect.NewClient[api.DeleteSettlementRequest, emptypb.Empty](httpClient, baseURL+SettlementServiceDeleteSettlementProcedure, opts...),
	}
}

type settlementServiceClient struct {
	getSettlementStatus *connect.Client[api.GetSettlementStatusRequest, api.SettlementStatus]
	recordSettlements   *connect.Client[api.RecordSettlementsRequest, api.RecordSettlementsResponse]
	updateSettlement    *connect.Client[api.UpdateSettlementRequest, api.SettlementResponse]
	deleteSettlement    *connect.Client[api.DeleteSettlementRequest, emptypb.Empty]
}

func (c *settlementServiceClient) GetSettlementStatus(ctx context.Context, req *connect.Request[api.GetSettlementStatusRequest]) (*connect.Response[api.SettlementStatus], error) {
	return c.getSettlementStatus.CallUnary(ctx, req)
}

func (c *settlementServiceClient) RecordSettlements(ctx context.Context, req *connect.Request[api.RecordSettlementsRequest]) (*connect.Response[api.RecordSettlementsResponse], error) {
	return c.recordSettlements.CallUnary(ctx, req)
}

func (c *settlementServiceClient) UpdateSettlement(ctx context.Context, req *connect.Request[api.UpdateSettlementRequest]) (*connect.Response[api.SettlementResponse], error) {
	return c.updateSettlement.CallUnary(ctx, req)
}

func (c *settlementServiceClient) DeleteSettlement(ctx context.Context, req *connect.Request[api.DeleteSettlementRequest]) (*connect.Response[emptypb.Empty], error) {
	return c.deleteSettlement.CallUnary(ctx, req)
}
