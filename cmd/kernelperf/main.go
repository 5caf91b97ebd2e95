// Command kernelperf runs the kernel variant/tuning sweep and prints timing
// and checksum reports
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strconv"
	"strings"

	"github.com/notargets/kernelperf/kernels"
	"github.com/notargets/kernelperf/suite"
	"github.com/notargets/kernelperf/utils"
)

func main() {
	var (
		configFile = flag.String("config", "", "YAML run configuration file")
		npasses    = flag.Int("npasses", 1, "Number of passes through the whole sweep")
		sizeFactor = flag.Float64("size-factor", 1.0, "Scale factor for default problem sizes")
		repFactor  = flag.Float64("rep-factor", 1.0, "Scale factor for default repetition counts")
		size       = flag.Int("size", 0, "Problem size for every kernel, overrides size-factor")
		blockSizes = flag.String("block-sizes", "", "Comma separated accelerator block sizes to run")
		kernelList = flag.String("kernels", "", "Comma separated kernel or group names to run")
		variants   = flag.String("variants", "", "Comma separated variant names to run")
		device     = flag.String("device", "", `OCCA device properties, e.g. {"mode": "CUDA", "device_id": 0}; "none" disables`)
		threads    = flag.Int("threads", 0, "Worker count for host-parallel variants")
		tolerance  = flag.Float64("tol", 0, "Checksum comparison tolerance")
	)
	flag.Parse()

	params := suite.DefaultRunParams()
	if *configFile != "" {
		loaded, err := suite.LoadRunParams(*configFile)
		if err != nil {
			log.Fatalf("Failed to load config: %v", err)
		}
		params = loaded
	}

	// flags given on the command line win over the config file
	var err error
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "npasses":
			params.NPasses = *npasses
		case "size-factor":
			params.SizeFactor = *sizeFactor
		case "rep-factor":
			params.RepFactor = *repFactor
		case "size":
			params.Size = *size
		case "block-sizes":
			params.BlockSizes, err = parseInts(*blockSizes)
		case "kernels":
			params.Kernels = splitList(*kernelList)
		case "variants":
			params.Variants = splitList(*variants)
		case "device":
			params.Device = *device
		case "threads":
			params.Threads = *threads
		case "tol":
			params.Tolerance = *tolerance
		}
	})
	if err != nil {
		log.Fatalf("Invalid -block-sizes: %v", err)
	}
	if err := params.Validate(); err != nil {
		log.Fatalf("Invalid run parameters: %v", err)
	}

	var props string
	if params.AcceleratorEnabled() {
		props = params.Device
	}
	dev, err := utils.CreateDevice(props)
	if err != nil {
		log.Fatalf("Failed to open accelerator: %v", err)
	}
	if dev != nil {
		defer dev.Free()
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	ks := kernels.Selected(&params, dev)
	if len(ks) == 0 {
		log.Fatalf("No kernels match %v", params.Kernels)
	}

	deviceMode := "none"
	if dev != nil {
		deviceMode = dev.Mode()
	}
	writeHeader(os.Stdout, suite.DescribeHost(&params), &params, deviceMode)

	results, err := suite.NewExecutor(&params, os.Stderr).Run(ctx, ks)
	if results != nil {
		writeTimings(os.Stdout, results, ks)
		writeChecksums(os.Stdout, results, params.Tolerance)
	}
	if err != nil {
		log.Fatalf("Run aborted: %v", err)
	}
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func parseInts(s string) ([]int, error) {
	var out []int
	for _, part := range splitList(s) {
		v, err := strconv.Atoi(part)
		if err != nil {
			return nil, fmt.Errorf("%q is not an integer", part)
		}
		out = append(out, v)
	}
	return out, nil
}
