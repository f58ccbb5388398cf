// Copyright 2019 Zhenhua Yang. All rights reserved.
// Licensed under the MIT License that can be
// found in the LICENSE file in the root directory.

// Package rpc holds the messages and the DBMS service described in
// dbms.proto.
package rpc

import (
	"context"
	"github.com/golang/protobuf/proto"
	"google.golang.org/grpc"
)

type RawSQL struct {
	Sql string `protobuf:"bytes,1,opt,name=sql,proto3" json:"sql,omitempty"`
}

func (m *RawSQL) Reset()         { *m = RawSQL{} }
func (m *RawSQL) String() string { return proto.CompactTextString(m) }
func (*RawSQL) ProtoMessage()    {}

func (m *RawSQL) GetSql() string {
	if m != nil {
		return m.Sql
	}
	return ""
}

type Row struct {
	Fields []string `protobuf:"bytes,1,rep,name=fields,proto3" json:"fields,omitempty"`
}

func (m *Row) Reset()         { *m = Row{} }
func (m *Row) String() string { return proto.CompactTextString(m) }
func (*Row) ProtoMessage()    {}

func (m *Row) GetFields() []string {
	if m != nil {
		return m.Fields
	}
	return nil
}

type ResultSet struct {
	Message  string   `protobuf:"bytes,1,opt,name=message,proto3" json:"message,omitempty"`
	FailFlag bool     `protobuf:"varint,2,opt,name=fail_flag,json=failFlag,proto3" json:"fail_flag,omitempty"`
	Header   []string `protobuf:"bytes,3,rep,name=header,proto3" json:"header,omitempty"`
	Rows     []*Row   `protobuf:"bytes,4,rep,name=rows,proto3" json:"rows,omitempty"`
}

func (m *ResultSet) Reset()         { *m = ResultSet{} }
func (m *ResultSet) String() string { return proto.CompactTextString(m) }
func (*ResultSet) ProtoMessage()    {}

func (m *ResultSet) GetMessage() string {
	if m != nil {
		return m.Message
	}
	return ""
}

func (m *ResultSet) GetFailFlag() bool {
	if m != nil {
		return m.FailFlag
	}
	return false
}

func (m *ResultSet) GetHeader() []string {
	if m != nil {
		return m.Header
	}
	return nil
}

func (m *ResultSet) GetRows() []*Row {
	if m != nil {
		return m.Rows
	}
	return nil
}

func init() {
	proto.RegisterType((*RawSQL)(nil), "rpc.RawSQL")
	proto.RegisterType((*Row)(nil), "rpc.Row")
	proto.RegisterType((*ResultSet)(nil), "rpc.ResultSet")
}

const executeMethod = "/rpc.DBMS/Execute"

type DBMSClient interface {
	Execute(ctx context.Context, in *RawSQL, opts ...grpc.CallOption) (*ResultSet, error)
}

type dbmsClient struct {
	cc *grpc.ClientConn
}

func NewDBMSClient(cc *grpc.ClientConn) DBMSClient {
	return &dbmsClient{cc}
}

func (c *dbmsClient) Execute(ctx context.Context, in *RawSQL, opts ...grpc.CallOption) (*ResultSet, error) {
	out := new(ResultSet)
	if err := c.cc.Invoke(ctx, executeMethod, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

type DBMSServer interface {
	Execute(context.Context, *RawSQL) (*ResultSet, error)
}

func RegisterDBMSServer(s *grpc.Server, srv DBMSServer) {
	s.RegisterService(&dbmsServiceDesc, srv)
}

func executeHandler(srv interface{}, ctx context.Context, dec func(interface{}) error,
	interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(RawSQL)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(DBMSServer).Execute(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: executeMethod,
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(DBMSServer).Execute(ctx, req.(*RawSQL))
	}
	return interceptor(ctx, in, info, handler)
}

var dbmsServiceDesc = grpc.ServiceDesc{
	ServiceName: "rpc.DBMS",
	HandlerType: (*DBMSServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "Execute",
			Handler:    executeHandler,
		},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "dbms.proto",
}
