package grpc

import (
	"fmt"

	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/reflect/protodesc"
	"google.golang.org/protobuf/reflect/protoreflect"
	"google.golang.org/protobuf/reflect/protoregistry"
	"google.golang.org/protobuf/types/descriptorpb"
	"google.golang.org/protobuf/types/known/structpb"
)

const protoFile = "propertydex/v1/return_engine.proto"

// File_propertydex_v1_return_engine_proto describes ReturnEngineService.
// It is registered globally so server reflection can resolve the service.
var File_propertydex_v1_return_engine_proto protoreflect.FileDescriptor

func init() {
	fd, err := buildFileDescriptor()
	if err != nil {
		panic(fmt.Sprintf("failed to build %s: %v", protoFile, err))
	}
	if err := protoregistry.GlobalFiles.RegisterFile(fd); err != nil {
		panic(fmt.Sprintf("failed to register %s: %v", protoFile, err))
	}
	File_propertydex_v1_return_engine_proto = fd
}

// buildFileDescriptor derives the file descriptor from ReturnEngineService_ServiceDesc:
// every method takes and returns google.protobuf.Struct
func buildFileDescriptor() (protoreflect.FileDescriptor, error) {
	structType := "." + string((&structpb.Struct{}).ProtoReflect().Descriptor().FullName())

	methods := make([]*descriptorpb.MethodDescriptorProto, len(ReturnEngineService_ServiceDesc.Methods))
	for i, m := range ReturnEngineService_ServiceDesc.Methods {
		methods[i] = &descriptorpb.MethodDescriptorProto{
			Name:       proto.String(m.MethodName),
			InputType:  proto.String(structType),
			OutputType: proto.String(structType),
		}
	}

	file := &descriptorpb.FileDescriptorProto{
		Name:       proto.String(protoFile),
		Package:    proto.String("propertydex.v1"),
		Dependency: []string{structpb.File_google_protobuf_struct_proto.Path()},
		Service: []*descriptorpb.ServiceDescriptorProto{{
			Name:   proto.String("ReturnEngineService"),
			Method: methods,
		}},
		Syntax: proto.String("proto3"),
	}

	return protodesc.NewFile(file, protoregistry.GlobalFiles)
}
