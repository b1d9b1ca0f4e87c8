package main

import (
	"bufio"
	"fmt"
	"net/http"
	"os"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/pflag"
	cliflag "k8s.io/component-base/cli/flag"
	"k8s.io/klog"

	"github.com/tracie-bench/tracie/cmd/executor/options"
	"github.com/tracie-bench/tracie/pkg/executor"
	"github.com/tracie-bench/tracie/pkg/metrics"
	"github.com/tracie-bench/tracie/pkg/signals"
)

func main() {
	klog.InitFlags(nil)

	o := options.NewOption()
	o.AddFlags(pflag.CommandLine)

	cliflag.InitFlags()
	if err := o.CheckOptionOrDie(); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}

	if err := Run(o); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
}

func Run(opt *options.Option) error {
	exec, err := executor.NewExecutor(opt)
	if err != nil {
		return err
	}

	stopCh := signals.SetupSignalHandler()

	if opt.MetricsBindAddress != "" {
		metrics.RegisterReplay()
		go func() {
			http.Handle("/metrics", promhttp.Handler())
			klog.Fatalf("Prometheus Http Server failed %s", http.ListenAndServe(opt.MetricsBindAddress, nil))
		}()
	}

	if !opt.Yes {
		fmt.Printf("Loaded %d jobs (UF task %gs, batch task %gs). Press Enter to start the replay...\n",
			exec.JobCount(), opt.UFTaskTime, opt.BatchTaskTime)
		// EOF starts immediately in non-interactive environments.
		_, _ = bufio.NewReader(os.Stdin).ReadString('\n')
	}

	return exec.Run(stopCh)
}
