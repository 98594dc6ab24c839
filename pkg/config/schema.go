package config

import (
	"sync"

	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/reflect/protodesc"
	"google.golang.org/protobuf/reflect/protoreflect"
	"google.golang.org/protobuf/types/descriptorpb"
)

// configFileDescriptor describes linkedseq/config.proto. Every field of the Config message sets the command line
// flag with the same name.
func configFileDescriptor() *descriptorpb.FileDescriptorProto {
	field := func(name string, number int32, fieldType descriptorpb.FieldDescriptorProto_Type) *descriptorpb.FieldDescriptorProto {
		return &descriptorpb.FieldDescriptorProto{
			Name:   proto.String(name),
			Number: proto.Int32(number),
			Label:  descriptorpb.FieldDescriptorProto_LABEL_OPTIONAL.Enum(),
			Type:   fieldType.Enum(),
		}
	}
	return &descriptorpb.FileDescriptorProto{
		Name:    proto.String("linkedseq/config.proto"),
		Package: proto.String("linkedseq"),
		Syntax:  proto.String("proto2"), // Explicit presence, so only fields written in the file set flags.
		MessageType: []*descriptorpb.DescriptorProto{{
			Name: proto.String("Config"),
			Field: []*descriptorpb.FieldDescriptorProto{
				field("log_handler_type", 1, descriptorpb.FieldDescriptorProto_TYPE_STRING),
				field("log_level", 2, descriptorpb.FieldDescriptorProto_TYPE_STRING),
				field("list_initial_capacity", 3, descriptorpb.FieldDescriptorProto_TYPE_INT64),
				field("list_compaction_min_free_slots", 4, descriptorpb.FieldDescriptorProto_TYPE_INT64),
			},
		}},
	}
}

// configSchema returns the descriptor of the Config message, building it once.
var configSchema = sync.OnceValues(func() (protoreflect.MessageDescriptor, error) {
	fd, err := protodesc.NewFile(configFileDescriptor(), nil)
	if err != nil {
		return nil, err
	}
	return fd.Messages().ByName("Config"), nil
})
