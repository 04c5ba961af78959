package api

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const ServiceName = "gamekeeper.v1.GameKeeper"

const (
	GameKeeper_SignUp_FullMethodName       = "/gamekeeper.v1.GameKeeper/SignUp"
	GameKeeper_SignIn_FullMethodName       = "/gamekeeper.v1.GameKeeper/SignIn"
	GameKeeper_SignOut_FullMethodName      = "/gamekeeper.v1.GameKeeper/SignOut"
	GameKeeper_RefreshToken_FullMethodName = "/gamekeeper.v1.GameKeeper/RefreshToken"
	GameKeeper_GetUser_FullMethodName      = "/gamekeeper.v1.GameKeeper/GetUser"
	GameKeeper_ConfirmEmail_FullMethodName = "/gamekeeper.v1.GameKeeper/ConfirmEmail"
	GameKeeper_ListGames_FullMethodName    = "/gamekeeper.v1.GameKeeper/ListGames"
	GameKeeper_InsertGame_FullMethodName   = "/gamekeeper.v1.GameKeeper/InsertGame"
	GameKeeper_UpdateGame_FullMethodName   = "/gamekeeper.v1.GameKeeper/UpdateGame"
	GameKeeper_DeleteGame_FullMethodName   = "/gamekeeper.v1.GameKeeper/DeleteGame"
	GameKeeper_UploadObject_FullMethodName = "/gamekeeper.v1.GameKeeper/UploadObject"
	GameKeeper_GetPublicURL_FullMethodName = "/gamekeeper.v1.GameKeeper/GetPublicURL"
	GameKeeper_WatchGames_FullMethodName   = "/gamekeeper.v1.GameKeeper/WatchGames"
)

// GameKeeperClient is the client API for the GameKeeper service.
type GameKeeperClient interface {
	SignUp(ctx context.Context, in *SignUpRequest, opts ...grpc.CallOption) (*SignUpResponse, error)
	SignIn(ctx context.Context, in *SignInRequest, opts ...grpc.CallOption) (*SignInResponse, error)
	SignOut(ctx context.Context, in *SignOutRequest, opts ...grpc.CallOption) (*SignOutResponse, error)
	RefreshToken(ctx context.Context, in *RefreshTokenRequest, opts ...grpc.CallOption) (*RefreshTokenResponse, error)
	GetUser(ctx context.Context, in *GetUserRequest, opts ...grpc.CallOption) (*GetUserResponse, error)
	ConfirmEmail(ctx context.Context, in *ConfirmEmailRequest, opts ...grpc.CallOption) (*ConfirmEmailResponse, error)
	ListGames(ctx context.Context, in *ListGamesRequest, opts ...grpc.CallOption) (*ListGamesResponse, error)
	InsertGame(ctx context.Context, in *InsertGameRequest, opts ...grpc.CallOption) (*InsertGameResponse, error)
	UpdateGame(ctx context.Context, in *UpdateGameRequest, opts ...grpc.CallOption) (*UpdateGameResponse, error)
	DeleteGame(ctx context.Context, in *DeleteGameRequest, opts ...grpc.CallOption) (*DeleteGameResponse, error)
	UploadObject(ctx context.Context, in *UploadObjectRequest, opts ...grpc.CallOption) (*UploadObjectResponse, error)
	GetPublicURL(ctx context.Context, in *GetPublicURLRequest, opts ...grpc.CallOption) (*GetPublicURLResponse, error)
	WatchGames(ctx context.Context, in *WatchGamesRequest, opts ...grpc.CallOption) (grpc.ServerStreamingClient[ChangeEvent], error)
}

type gameKeeperClient struct {
	cc grpc.ClientConnInterface
}

func NewGameKeeperClient(cc grpc.ClientConnInterface) GameKeeperClient {
	return &gameKeeperClient{cc}
}

func invoke[Resp any](ctx context.Context, cc grpc.ClientConnInterface, method string, in any, opts []grpc.CallOption) (*Resp, error) {
	out := new(Resp)
	if err := cc.Invoke(ctx, method, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *gameKeeperClient) SignUp(ctx context.Context, in *SignUpRequest, opts ...grpc.CallOption) (*SignUpResponse, error) {
	return invoke[SignUpResponse](ctx, c.cc, GameKeeper_SignUp_FullMethodName, in, opts)
}

func (c *gameKeeperClient) SignIn(ctx context.Context, in *SignInRequest, opts ...grpc.CallOption) (*SignInResponse, error) {
	return invoke[SignInResponse](ctx, c.cc, GameKeeper_SignIn_FullMethodName, in, opts)
}

func (c *gameKeeperClient) SignOut(ctx context.Context, in *SignOutRequest, opts ...grpc.CallOption) (*SignOutResponse, error) {
	return invoke[SignOutResponse](ctx, c.cc, GameKeeper_SignOut_FullMethodName, in, opts)
}

func (c *gameKeeperClient) RefreshToken(ctx context.Context, in *RefreshTokenRequest, opts ...grpc.CallOption) (*RefreshTokenResponse, error) {
	return invoke[RefreshTokenResponse](ctx, c.cc, GameKeeper_RefreshToken_FullMethodName, in, opts)
}

func (c *gameKeeperClient) GetUser(ctx context.Context, in *GetUserRequest, opts ...grpc.CallOption) (*GetUserResponse, error) {
	return invoke[GetUserResponse](ctx, c.cc, GameKeeper_GetUser_FullMethodName, in, opts)
}

func (c *gameKeeperClient) ConfirmEmail(ctx context.Context, in *ConfirmEmailRequest, opts ...grpc.CallOption) (*ConfirmEmailResponse, error) {
	return invoke[ConfirmEmailResponse](ctx, c.cc, GameKeeper_ConfirmEmail_FullMethodName, in, opts)
}

func (c *gameKeeperClient) ListGames(ctx context.Context, in *ListGamesRequest, opts ...grpc.CallOption) (*ListGamesResponse, error) {
	return invoke[ListGamesResponse](ctx, c.cc, GameKeeper_ListGames_FullMethodName, in, opts)
}

func (c *gameKeeperClient) InsertGame(ctx context.Context, in *InsertGameRequest, opts ...grpc.CallOption) (*InsertGameResponse, error) {
	return invoke[InsertGameResponse](ctx, c.cc, GameKeeper_InsertGame_FullMethodName, in, opts)
}

func (c *gameKeeperClient) UpdateGame(ctx context.Context, in *UpdateGameRequest, opts ...grpc.CallOption) (*UpdateGameResponse, error) {
	return invoke[UpdateGameResponse](ctx, c.cc, GameKeeper_UpdateGame_FullMethodName, in, opts)
}

func (c *gameKeeperClient) DeleteGame(ctx context.Context, in *DeleteGameRequest, opts ...grpc.CallOption) (*DeleteGameResponse, error) {
	return invoke[DeleteGameResponse](ctx, c.cc, GameKeeper_DeleteGame_FullMethodName, in, opts)
}

func (c *gameKeeperClient) UploadObject(ctx context.Context, in *UploadObjectRequest, opts ...grpc.CallOption) (*UploadObjectResponse, error) {
	return invoke[UploadObjectResponse](ctx, c.cc, GameKeeper_UploadObject_FullMethodName, in, opts)
}

func (c *gameKeeperClient) GetPublicURL(ctx context.Context, in *GetPublicURLRequest, opts ...grpc.CallOption) (*GetPublicURLResponse, error) {
	return invoke[GetPublicURLResponse](ctx, c.cc, GameKeeper_GetPublicURL_FullMethodName, in, opts)
}

func (c *gameKeeperClient) WatchGames(ctx context.Context, in *WatchGamesRequest, opts ...grpc.CallOption) (grpc.ServerStreamingClient[ChangeEvent], error) {
	stream, err := c.cc.NewStream(ctx, &GameKeeper_ServiceDesc.Streams[0], GameKeeper_WatchGames_FullMethodName, opts...)
	if err != nil {
		return nil, err
	}
	x := &grpc.GenericClientStream[WatchGamesRequest, ChangeEvent]{ClientStream: stream}
	if err := x.ClientStream.SendMsg(in); err != nil {
		return nil, err
	}
	if err := x.ClientStream.CloseSend(); err != nil {
		return nil, err
	}
	return x, nil
}

// GameKeeperServer is the server API for the GameKeeper service.
type GameKeeperServer interface {
	SignUp(context.Context, *SignUpRequest) (*SignUpResponse, error)
	SignIn(context.Context, *SignInRequest) (*SignInResponse, error)
	SignOut(context.Context, *SignOutRequest) (*SignOutResponse, error)
	RefreshToken(context.Context, *RefreshTokenRequest) (*RefreshTokenResponse, error)
	GetUser(context.Context, *GetUserRequest) (*GetUserResponse, error)
	ConfirmEmail(context.Context, *ConfirmEmailRequest) (*ConfirmEmailResponse, error)
	ListGames(context.Context, *ListGamesRequest) (*ListGamesResponse, error)
	InsertGame(context.Context, *InsertGameRequest) (*InsertGameResponse, error)
	UpdateGame(context.Context, *UpdateGameRequest) (*UpdateGameResponse, error)
	DeleteGame(context.Context, *DeleteGameRequest) (*DeleteGameResponse, error)
	UploadObject(context.Context, *UploadObjectRequest) (*UploadObjectResponse, error)
	GetPublicURL(context.Context, *GetPublicURLRequest) (*GetPublicURLResponse, error)
	WatchGames(*WatchGamesRequest, grpc.ServerStreamingServer[ChangeEvent]) error
}

// UnimplementedGameKeeperServer can be embedded to have forward compatible
// implementations.
type UnimplementedGameKeeperServer struct{}

func (UnimplementedGameKeeperServer) SignUp(context.Context, *SignUpRequest) (*SignUpResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method SignUp not implemented")
}
func (UnimplementedGameKeeperServer) SignIn(context.Context, *SignInRequest) (*SignInResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method SignIn not implemented")
}
func (UnimplementedGameKeeperServer) SignOut(context.Context, *SignOutRequest) (*SignOutResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method SignOut not implemented")
}
func (UnimplementedGameKeeperServer) RefreshToken(context.Context, *RefreshTokenRequest) (*RefreshTokenResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method RefreshToken not implemented")
}
func (UnimplementedGameKeeperServer) GetUser(context.Context, *GetUserRequest) (*GetUserResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method GetUser not implemented")
}
func (UnimplementedGameKeeperServer) ConfirmEmail(context.Context, *ConfirmEmailRequest) (*ConfirmEmailResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method ConfirmEmail not implemented")
}
func (UnimplementedGameKeeperServer) ListGames(context.Context, *ListGamesRequest) (*ListGamesResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method ListGames not implemented")
}
func (UnimplementedGameKeeperServer) InsertGame(context.Context, *InsertGameRequest) (*InsertGameResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method InsertGame not implemented")
}
func (UnimplementedGameKeeperServer) UpdateGame(context.Context, *UpdateGameRequest) (*UpdateGameResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method UpdateGame not implemented")
}
func (UnimplementedGameKeeperServer) DeleteGame(context.Context, *DeleteGameRequest) (*DeleteGameResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method DeleteGame not implemented")
}
func (UnimplementedGameKeeperServer) UploadObject(context.Context, *UploadObjectRequest) (*UploadObjectResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method UploadObject not implemented")
}
func (UnimplementedGameKeeperServer) GetPublicURL(context.Context, *GetPublicURLRequest) (*GetPublicURLResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method GetPublicURL not implemented")
}
func (UnimplementedGameKeeperServer) WatchGames(*WatchGamesRequest, grpc.ServerStreamingServer[ChangeEvent]) error {
	return status.Error(codes.Unimplemented, "method WatchGames not implemented")
}

func RegisterGameKeeperServer(s grpc.ServiceRegistrar, srv GameKeeperServer) {
	s.RegisterService(&GameKeeper_ServiceDesc, srv)
}

// unaryHandler adapts a typed server method to grpc.MethodHandler.
func unaryHandler[Req, Resp any](method string, call func(GameKeeperServer, context.Context, *Req) (*Resp, error)) grpc.MethodHandler {
	return func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
		in := new(Req)
		if err := dec(in); err != nil {
			return nil, err
		}
		if interceptor == nil {
			return call(srv.(GameKeeperServer), ctx, in)
		}
		info := &grpc.UnaryServerInfo{
			Server:     srv,
			FullMethod: method,
		}
		handler := func(ctx context.Context, req any) (any, error) {
			return call(srv.(GameKeeperServer), ctx, req.(*Req))
		}
		return interceptor(ctx, in, info, handler)
	}
}

func _GameKeeper_WatchGames_Handler(srv any, stream grpc.ServerStream) error {
	m := new(WatchGamesRequest)
	if err := stream.RecvMsg(m); err != nil {
		return err
	}
	return srv.(GameKeeperServer).WatchGames(m, &grpc.GenericServerStream[WatchGamesRequest, ChangeEvent]{ServerStream: stream})
}

// GameKeeper_ServiceDesc is the grpc.ServiceDesc for the GameKeeper service.
var GameKeeper_ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*GameKeeperServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "SignUp", Handler: unaryHandler(GameKeeper_SignUp_FullMethodName, GameKeeperServer.SignUp)},
		{MethodName: "SignIn", Handler: unaryHandler(GameKeeper_SignIn_FullMethodName, GameKeeperServer.SignIn)},
		{MethodName: "SignOut", Handler: unaryHandler(GameKeeper_SignOut_FullMethodName, GameKeeperServer.SignOut)},
		{MethodName: "RefreshToken", Handler: unaryHandler(GameKeeper_RefreshToken_FullMethodName, GameKeeperServer.RefreshToken)},
		{MethodName: "GetUser", Handler: unaryHandler(GameKeeper_GetUser_FullMethodName, GameKeeperServer.GetUser)},
		{MethodName: "ConfirmEmail", Handler: unaryHandler(GameKeeper_ConfirmEmail_FullMethodName, GameKeeperServer.ConfirmEmail)},
		{MethodName: "ListGames", Handler: unaryHandler(GameKeeper_ListGames_FullMethodName, GameKeeperServer.ListGames)},
		{MethodName: "InsertGame", Handler: unaryHandler(GameKeeper_InsertGame_FullMethodName, GameKeeperServer.InsertGame)},
		{MethodName: "UpdateGame", Handler: unaryHandler(GameKeeper_UpdateGame_FullMethodName, GameKeeperServer.UpdateGame)},
		{MethodName: "DeleteGame", Handler: unaryHandler(GameKeeper_DeleteGame_FullMethodName, GameKeeperServer.DeleteGame)},
		{MethodName: "UploadObject", Handler: unaryHandler(GameKeeper_UploadObject_FullMethodName, GameKeeperServer.UploadObject)},
		{MethodName: "GetPublicURL", Handler: unaryHandler(GameKeeper_GetPublicURL_FullMethodName, GameKeeperServer.GetPublicURL)},
	},
	Streams: []grpc.StreamDesc{
		{
			StreamName:    "WatchGames",
			Handler:       _GameKeeper_WatchGames_Handler,
			ServerStreams: true,
		},
	},
	Metadata: "gamekeeper/v1/gamekeeper.proto",
}
