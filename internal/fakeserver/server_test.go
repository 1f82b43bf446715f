package fakeserver_test

import (
	"context"
	"testing"

	. "github.com/bsm/ginkgo/v2"
	. "github.com/bsm/gomega"
	"github.com/redis/go-redis/v9"

	"respclient/internal/fakeserver"
	"respclient/pkg/client"
	"respclient/pkg/resp"
)

func TestFakeServer(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "fakeserver")
}

var _ = Describe("Server", func() {
	var (
		ctx context.Context
		srv *fakeserver.Server
		rdb *redis.Client
		cli *client.Client
	)

	BeforeEach(func() {
		ctx = context.Background()

		var err error
		srv, err = fakeserver.Start("127.0.0.1:0")
		Expect(err).NotTo(HaveOccurred())

		// HELLO and CLIENT SETINFO are answered with errors, go-redis falls
		// back to RESP2 and carries on.
		rdb = redis.NewClient(&redis.Options{Addr: srv.Addr(), Protocol: 2})

		cli = client.New()
		Expect(cli.Connect(srv.Endpoint())).To(Succeed())
	})

	AfterEach(func() {
		Expect(cli.Close()).To(Succeed())
		Expect(rdb.Close()).To(Succeed())
		Expect(srv.Close()).To(Succeed())
	})

	It("answers PING from both clients", func() {
		Expect(rdb.Ping(ctx).Val()).To(Equal("PONG"))
		Expect(cli.Ping()).To(Succeed())
	})

	It("shares strings between clients", func() {
		Expect(cli.Set("string", "hello world!")).To(Succeed())
		Expect(rdb.Get(ctx, "string").Val()).To(Equal("hello world!"))

		Expect(rdb.Set(ctx, "float:pi", 3.14159265, 0).Err()).NotTo(HaveOccurred())
		reply, err := cli.Get("float:pi")
		Expect(err).NotTo(HaveOccurred())
		Expect(reply).To(Equal(resp.MakeBulkReply([]byte("3.14159265"))))
	})

	It("shares hashes between clients", func() {
		Expect(cli.HashMSet("myhash",
			client.FieldValue{Field: "name", Value: "zhaolong"},
			client.FieldValue{Field: "age", Value: 25},
		)).To(Succeed())

		Expect(rdb.HGetAll(ctx, "myhash").Val()).To(Equal(map[string]string{
			"name": "zhaolong",
			"age":  "25",
		}))

		Expect(rdb.HSet(ctx, "myhash", "email", "2745818@qq.com").Val()).To(Equal(int64(1)))
		reply, err := cli.HGet("myhash", "email")
		Expect(err).NotTo(HaveOccurred())
		Expect(reply).To(Equal(resp.MakeBulkReply([]byte("2745818@qq.com"))))
	})

	It("reports missing keys as nil", func() {
		Expect(rdb.Get(ctx, "nope").Err()).To(Equal(redis.Nil))

		reply, err := cli.Get("nope")
		Expect(err).NotTo(HaveOccurred())
		Expect(reply.(*resp.BulkReply).IsNil()).To(BeTrue())
	})

	It("returns WRONGTYPE errors to both clients", func() {
		Expect(rdb.HSet(ctx, "h", "f", "v").Err()).NotTo(HaveOccurred())
		Expect(rdb.Get(ctx, "h").Err()).To(MatchError(ContainSubstring("WRONGTYPE")))

		_, err := cli.Get("h")
		var cmdErr *client.CommandError
		Expect(err).To(BeAssignableToTypeOf(cmdErr))
		Expect(client.ErrorKind(err)).To(Equal(client.KindCommand))
	})

	It("drops clients on Close", func() {
		Expect(srv.Close()).To(Succeed())
		Expect(cli.Ping()).To(HaveOccurred())
		Expect(client.ErrorKind(cli.Ping())).To(Equal(client.KindIO))
		// closing twice is harmless
		Expect(srv.Close()).To(Succeed())
	})
})
