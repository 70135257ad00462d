package executor

import (
	"context"
	"fmt"
	"regexp"
	"sentrywatch/src/modules/shared"
	"strings"
	"time"

	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/reflection/grpc_reflection_v1alpha"
	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/reflect/protodesc"
	"google.golang.org/protobuf/reflect/protoreflect"
	"google.golang.org/protobuf/types/descriptorpb"
	"google.golang.org/protobuf/types/dynamicpb"
)

type GRPCConfig struct {
	GrpcUrl         string `json:"grpcUrl" validate:"required" example:"localhost:50051"`
	GrpcProtobuf    string `json:"grpcProtobuf" validate:"required"`
	GrpcServiceName string `json:"grpcServiceName" validate:"required" example:"Health"`
	GrpcMethod      string `json:"grpcMethod" validate:"required" example:"check"`
	GrpcEnableTls   bool   `json:"grpcEnableTls"`
	GrpcBody        string `json:"grpcBody"`
	Keyword         string `json:"keyword"`
	InvertKeyword   bool   `json:"invertKeyword"`
}

type GRPCExecutor struct {
	logger *zap.SugaredLogger
}

func NewGRPCExecutor(logger *zap.SugaredLogger) *GRPCExecutor {
	return &GRPCExecutor{
		logger: logger,
	}
}

func (g *GRPCExecutor) Unmarshal(configJSON string) (any, error) {
	return GenericUnmarshal[GRPCConfig](configJSON)
}

func (g *GRPCExecutor) Validate(configJSON string) error {
	cfg, err := g.Unmarshal(configJSON)
	if err != nil {
		return err
	}
	return GenericValidator(cfg.(*GRPCConfig))
}

func (g *GRPCExecutor) Execute(ctx context.Context, m *Monitor, proxyModel *Proxy) *Result {
	startTime := time.Now().UTC()

	cfgAny, err := g.Unmarshal(m.Config)
	if err != nil {
		return DownResult(fmt.Errorf("invalid config: %w", err), startTime, time.Now().UTC())
	}
	cfg := cfgAny.(*GRPCConfig)

	g.logger.Debugf("execute grpc cfg: %+v", cfg)

	var opts []grpc.DialOption
	if cfg.GrpcEnableTls {
		opts = append(opts, grpc.WithTransportCredentials(credentials.NewTLS(nil)))
	} else {
		opts = append(opts, grpc.WithTransportCredentials(insecure.NewCredentials()))
	}

	conn, err := grpc.NewClient(cfg.GrpcUrl, opts...)
	if err != nil {
		return DownResult(fmt.Errorf("failed to create gRPC client: %w", err), startTime, time.Now().UTC())
	}
	defer conn.Close()

	callCtx, callCancel := context.WithTimeout(ctx, time.Duration(m.Timeout)*time.Second)
	defer callCancel()

	response, err := g.executeGRPCCall(callCtx, conn, cfg)
	endTime := time.Now().UTC()

	if err != nil {
		g.logger.Infof("gRPC call failed: %s, %s", m.Name, err.Error())
		return &Result{
			Status:    shared.MonitorStatusDown,
			Message:   fmt.Sprintf("Error in send gRPC: %v", err),
			StartTime: startTime,
			EndTime:   endTime,
		}
	}

	responseData := response
	if len(responseData) > 50 {
		responseData = responseData[:47] + "..."
	}

	if cfg.Keyword != "" {
		keywordFound := strings.Contains(response, cfg.Keyword)
		expectedFound := !cfg.InvertKeyword

		if keywordFound == expectedFound {
			g.logger.Infof("gRPC call successful with keyword check: %s", m.Name)
			return &Result{
				Status:    shared.MonitorStatusUp,
				Message:   fmt.Sprintf("%s, keyword [%s] %s found", responseData, cfg.Keyword, map[bool]string{true: "is", false: "not"}[keywordFound]),
				StartTime: startTime,
				EndTime:   endTime,
			}
		}

		g.logger.Debugf("gRPC response [%s], but keyword [%s] is %s in [%s]", response, cfg.Keyword, map[bool]string{true: "present", false: "not"}[keywordFound], response)
		return &Result{
			Status:    shared.MonitorStatusDown,
			Message:   fmt.Sprintf("but keyword [%s] is %s in [%s]", cfg.Keyword, map[bool]string{true: "present", false: "not"}[keywordFound], responseData),
			StartTime: startTime,
			EndTime:   endTime,
		}
	}

	g.logger.Infof("gRPC call successful: %s", m.Name)
	return &Result{
		Status:    shared.MonitorStatusUp,
		Message:   fmt.Sprintf("gRPC call successful: %s", responseData),
		StartTime: startTime,
		EndTime:   endTime,
	}
}

// executeGRPCCall resolves the target method's descriptors via server reflection
// and invokes it dynamically. Unlike a hand-faked descriptor, a reflection
// failure or invoke error is never papered over with a synthetic response: the
// monitor reports DOWN whenever the real call can't be proven to have worked.
func (g *GRPCExecutor) executeGRPCCall(ctx context.Context, conn *grpc.ClientConn, cfg *GRPCConfig) (string, error) {
	packageName := g.extractPackageName(cfg.GrpcProtobuf)
	fullServiceName := cfg.GrpcServiceName
	if packageName != "" {
		fullServiceName = packageName + "." + cfg.GrpcServiceName
	}

	serviceDesc, err := g.resolveServiceViaReflection(ctx, conn, fullServiceName)
	if err != nil {
		return "", fmt.Errorf("server reflection lookup failed: %w", err)
	}

	methodDesc := serviceDesc.Methods().ByName(protoreflect.Name(cfg.GrpcMethod))
	if methodDesc == nil {
		return "", fmt.Errorf("method %s not found on service %s", cfg.GrpcMethod, fullServiceName)
	}

	requestMsg := dynamicpb.NewMessage(methodDesc.Input())
	if cfg.GrpcBody != "" {
		if err := protojson.Unmarshal([]byte(cfg.GrpcBody), requestMsg); err != nil {
			return "", fmt.Errorf("failed to unmarshal request body: %w", err)
		}
	}

	responseMsg := dynamicpb.NewMessage(methodDesc.Output())
	fullMethodName := fmt.Sprintf("/%s/%s", fullServiceName, cfg.GrpcMethod)

	g.logger.Debugf("invoking method: %s", fullMethodName)

	if err := conn.Invoke(ctx, fullMethodName, requestMsg, responseMsg); err != nil {
		return "", fmt.Errorf("gRPC invoke failed: %w", err)
	}

	responseJSON, err := protojson.Marshal(responseMsg)
	if err != nil {
		return "", fmt.Errorf("failed to marshal response: %w", err)
	}

	return string(responseJSON), nil
}

// resolveServiceViaReflection walks the gRPC server reflection protocol to
// fetch the FileDescriptorProto containing fullServiceName, plus every
// transitive dependency it imports, then builds a real descriptor registry
// from them rather than hand-constructing descriptors for a handful of
// guessed type names.
func (g *GRPCExecutor) resolveServiceViaReflection(ctx context.Context, conn *grpc.ClientConn, fullServiceName string) (protoreflect.ServiceDescriptor, error) {
	client := grpc_reflection_v1alpha.NewServerReflectionClient(conn)
	stream, err := client.ServerReflectionInfo(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to open reflection stream: %w", err)
	}
	defer stream.CloseSend()

	fileSet := &descriptorpb.FileDescriptorSet{}
	fetched := make(map[string]bool)

	var fetchByFilename func(filename string) error
	fetch := func(req *grpc_reflection_v1alpha.ServerReflectionRequest) ([][]byte, error) {
		if err := stream.Send(req); err != nil {
			return nil, err
		}
		resp, err := stream.Recv()
		if err != nil {
			return nil, err
		}
		if errResp := resp.GetErrorResponse(); errResp != nil {
			return nil, fmt.Errorf("reflection error %d: %s", errResp.ErrorCode, errResp.ErrorMessage)
		}
		fdResp := resp.GetFileDescriptorResponse()
		if fdResp == nil {
			return nil, fmt.Errorf("reflection response did not contain a file descriptor")
		}
		return fdResp.FileDescriptorProto, nil
	}

	addFile := func(raw []byte) (*descriptorpb.FileDescriptorProto, error) {
		fdProto := &descriptorpb.FileDescriptorProto{}
		if err := proto.Unmarshal(raw, fdProto); err != nil {
			return nil, fmt.Errorf("failed to unmarshal file descriptor: %w", err)
		}
		if fetched[fdProto.GetName()] {
			return fdProto, nil
		}
		fetched[fdProto.GetName()] = true
		fileSet.File = append(fileSet.File, fdProto)
		return fdProto, nil
	}

	fetchByFilename = func(filename string) error {
		if fetched[filename] {
			return nil
		}
		raws, err := fetch(&grpc_reflection_v1alpha.ServerReflectionRequest{
			MessageRequest: &grpc_reflection_v1alpha.ServerReflectionRequest_FileByFilename{FileByFilename: filename},
		})
		if err != nil {
			return fmt.Errorf("failed to fetch %s: %w", filename, err)
		}
		for _, raw := range raws {
			fdProto, err := addFile(raw)
			if err != nil {
				return err
			}
			for _, dep := range fdProto.GetDependency() {
				if err := fetchByFilename(dep); err != nil {
					return err
				}
			}
		}
		return nil
	}

	raws, err := fetch(&grpc_reflection_v1alpha.ServerReflectionRequest{
		MessageRequest: &grpc_reflection_v1alpha.ServerReflectionRequest_FileContainingSymbol{FileContainingSymbol: fullServiceName},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to resolve symbol %s: %w", fullServiceName, err)
	}
	for _, raw := range raws {
		fdProto, err := addFile(raw)
		if err != nil {
			return nil, err
		}
		for _, dep := range fdProto.GetDependency() {
			if err := fetchByFilename(dep); err != nil {
				return nil, err
			}
		}
	}

	registry, err := protodesc.NewFiles(fileSet)
	if err != nil {
		return nil, fmt.Errorf("failed to build descriptor registry: %w", err)
	}

	desc, err := registry.FindDescriptorByName(protoreflect.FullName(fullServiceName))
	if err != nil {
		return nil, fmt.Errorf("service %s not found via reflection: %w", fullServiceName, err)
	}

	serviceDesc, ok := desc.(protoreflect.ServiceDescriptor)
	if !ok {
		return nil, fmt.Errorf("%s is not a service descriptor", fullServiceName)
	}

	return serviceDesc, nil
}

// extractPackageName reads the "package X;" declaration out of the monitor's
// recorded proto source, used only to qualify the service name passed to
// reflection (servers usually register services under their package name).
func (g *GRPCExecutor) extractPackageName(protoContent string) string {
	re := regexp.MustCompile(`package\s+([^;]+);`)
	matches := re.FindStringSubmatch(protoContent)
	if len(matches) > 1 {
		return strings.TrimSpace(matches[1])
	}
	return ""
}
